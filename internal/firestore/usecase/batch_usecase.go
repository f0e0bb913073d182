package usecase

import (
	"context"

	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/shared/errors"
	"firestore-fake/internal/shared/paths"
)

// maxBatchWrites mirrors the 500-operation batch limit of the emulated
// backend.
const maxBatchWrites = 500

// WriteBatch buffers set/update/delete operations and applies them in
// issuance order on Commit. Operations are validated as they are added so
// Commit cannot fail halfway through.
type WriteBatch struct {
	uc        *FirestoreUsecase
	writes    []pendingWrite
	committed bool
}

// NewWriteBatch creates an empty batch.
func (uc *FirestoreUsecase) NewWriteBatch() *WriteBatch {
	return &WriteBatch{uc: uc}
}

// Set buffers a document set.
func (b *WriteBatch) Set(path string, data map[string]interface{}, merge bool) error {
	if err := b.checkAppend(path); err != nil {
		return err
	}
	if err := validateUpdateData(data); err != nil {
		return err
	}
	b.writes = append(b.writes, pendingWrite{kind: writeSet, path: path, data: model.DeepCopyMap(data), merge: merge})
	return nil
}

// Update buffers a document update.
func (b *WriteBatch) Update(path string, data map[string]interface{}) error {
	if err := b.checkAppend(path); err != nil {
		return err
	}
	if err := validateUpdateData(data); err != nil {
		return err
	}
	b.writes = append(b.writes, pendingWrite{kind: writeUpdate, path: path, data: model.DeepCopyMap(data)})
	return nil
}

// Delete buffers a document delete.
func (b *WriteBatch) Delete(path string) error {
	if err := b.checkAppend(path); err != nil {
		return err
	}
	b.writes = append(b.writes, pendingWrite{kind: writeDelete, path: path})
	return nil
}

// Len returns the number of buffered operations.
func (b *WriteBatch) Len() int { return len(b.writes) }

// Commit applies the buffered operations in issuance order. A batch commits
// at most once.
func (b *WriteBatch) Commit(ctx context.Context) error {
	if b.committed {
		return errors.NewValidationError("write batch has already been committed")
	}
	b.committed = true
	for _, write := range b.writes {
		if err := b.uc.applyPendingWrite(ctx, write); err != nil {
			return errors.WrapError(err, "applying batch write")
		}
	}
	b.uc.log.Debugf("write batch committed (%d writes)", len(b.writes))
	return nil
}

func (b *WriteBatch) checkAppend(path string) error {
	if b.committed {
		return errors.NewValidationError("write batch has already been committed")
	}
	if len(b.writes) >= maxBatchWrites {
		return errors.NewValidationError("write batch cannot exceed 500 operations")
	}
	return paths.ValidateDocumentPath(path)
}
