package usecase

import (
	"context"
	"sort"
	"strings"

	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/shared/errors"
	"firestore-fake/internal/shared/paths"
)

// GetDocument reads a document and returns its snapshot. A never-written or
// deleted document yields a snapshot with Exists() == false and no data.
func (uc *FirestoreUsecase) GetDocument(ctx context.Context, path string) (*model.DocumentSnapshot, error) {
	if err := paths.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	fields, exists := uc.store.GetDocument(ctx, path)
	return model.NewDocumentSnapshot(path, fields, exists), nil
}

// SetDocument overwrites a document with data. With merge false all prior
// fields are cleared first; with merge true fields absent from data are
// preserved. Data is deep-copied before use, so mutating the caller's map
// afterwards never affects stored state.
func (uc *FirestoreUsecase) SetDocument(ctx context.Context, path string, data map[string]interface{}, merge bool) error {
	if err := paths.ValidateDocumentPath(path); err != nil {
		return err
	}
	if err := validateUpdateData(data); err != nil {
		return err
	}

	var fields map[string]interface{}
	if merge {
		fields, _ = uc.store.GetDocument(ctx, path)
	} else {
		fields = map[string]interface{}{}
	}

	if err := uc.applyData(fields, data); err != nil {
		return err
	}
	uc.persist(ctx, path, fields)
	return nil
}

// UpdateDocument applies data on top of the current fields. Keys containing
// dots denote nested field paths; intermediate nested maps are created on
// demand, overwriting non-map values along the way. A document updated after
// deletion comes back fresh.
func (uc *FirestoreUsecase) UpdateDocument(ctx context.Context, path string, data map[string]interface{}) error {
	if err := paths.ValidateDocumentPath(path); err != nil {
		return err
	}
	if err := validateUpdateData(data); err != nil {
		return err
	}

	fields, _ := uc.store.GetDocument(ctx, path)
	if err := uc.applyData(fields, data); err != nil {
		return err
	}
	uc.persist(ctx, path, fields)
	return nil
}

// DeleteDocument removes a document. Deleting an absent document is a no-op.
func (uc *FirestoreUsecase) DeleteDocument(ctx context.Context, path string) error {
	if err := paths.ValidateDocumentPath(path); err != nil {
		return err
	}
	existed := uc.store.HasDocument(ctx, path)
	uc.store.DeleteDocument(ctx, path)
	if existed {
		uc.publishDocumentEvent(ctx, eventDocumentDeleted, path)
	}
	return nil
}

// AddDocument creates a document under collectionPath with a generated ID
// and returns its full path.
func (uc *FirestoreUsecase) AddDocument(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	if err := paths.ValidateCollectionPath(collectionPath); err != nil {
		return "", err
	}
	path := paths.Append(collectionPath, model.NewAutoIDWithLength(uc.cfg.AutoIDLength))
	if err := uc.SetDocument(ctx, path, data, false); err != nil {
		return "", err
	}
	uc.log.Debugf("added document %s", path)
	return path, nil
}

// QueryDocuments runs a query through the query engine.
func (uc *FirestoreUsecase) QueryDocuments(ctx context.Context, query model.Query) ([]*model.DocumentSnapshot, error) {
	return uc.queries.ExecuteQuery(ctx, query)
}

// ListCollections lists the collection IDs under a parent document path, or
// the root collections for an empty parent.
func (uc *FirestoreUsecase) ListCollections(ctx context.Context, parentPath string) ([]string, error) {
	if parentPath != "" {
		if err := paths.ValidateDocumentPath(parentPath); err != nil {
			return nil, err
		}
	}
	return uc.store.ListCollections(ctx, parentPath), nil
}

// DumpTree returns the store's full nested tree for diagnostics.
func (uc *FirestoreUsecase) DumpTree(ctx context.Context) map[string]interface{} {
	return uc.store.DumpTree(ctx)
}

// persist writes the updated fields back and publishes a change event.
func (uc *FirestoreUsecase) persist(ctx context.Context, path string, fields map[string]interface{}) {
	existed := uc.store.HasDocument(ctx, path)
	uc.store.WriteDocument(ctx, path, fields)
	if existed {
		uc.publishDocumentEvent(ctx, eventDocumentUpdated, path)
	} else {
		uc.publishDocumentEvent(ctx, eventDocumentCreated, path)
	}
}

// validateUpdateData rejects sentinels embedded inside nested map or list
// literals, and sentinels with invalid inputs. A sentinel is only legal as
// the direct value of a (possibly dotted) key, and every sentinel must be
// resolvable so buffered writes cannot fail once they start applying.
func validateUpdateData(data map[string]interface{}) error {
	for key, value := range data {
		if sentinel, isSentinel := value.(*model.FieldValue); isSentinel {
			if err := sentinel.Validate(); err != nil {
				return err
			}
			continue
		}
		if model.ContainsSentinel(value) {
			return errors.NewValidationError("field value sentinels cannot be embedded in nested values").
				WithDetail("key", key)
		}
	}
	return nil
}

// applyData applies every entry of data onto fields in place. Keys are
// processed in sorted order so overlapping dot paths resolve
// deterministically.
func (uc *FirestoreUsecase) applyData(fields map[string]interface{}, data map[string]interface{}) error {
	now := uc.now()

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		target, terminal := navigateFieldPath(fields, key)
		value := data[key]
		if sentinel, ok := value.(*model.FieldValue); ok {
			if err := sentinel.Resolve(target, terminal, now); err != nil {
				return err
			}
			continue
		}
		target[terminal] = model.DeepCopyValue(model.NormalizeValue(value))
	}
	return nil
}

// navigateFieldPath walks the dotted key through fields, creating empty
// nested maps for missing or non-map intermediate segments, and returns the
// innermost map together with the terminal field name.
func navigateFieldPath(fields map[string]interface{}, key string) (map[string]interface{}, string) {
	segments := strings.Split(key, ".")
	current := fields
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[segment] = next
		}
		current = next
	}
	return current, segments[len(segments)-1]
}
