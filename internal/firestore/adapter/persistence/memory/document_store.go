// Package memory provides the in-memory persistence adapter: a path-keyed
// document store and a query engine over it.
package memory

import (
	"context"
	"sort"
	"sync"

	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/firestore/domain/repository"
	"firestore-fake/internal/shared/logger"
	"firestore-fake/internal/shared/paths"
)

// DocumentStore keeps every document in a flat map keyed by its full path.
// Presence in the map is the existence flag; collections exist implicitly
// through the documents under them.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]interface{}
	log  logger.Logger
}

// NewDocumentStore creates an empty store.
func NewDocumentStore(log logger.Logger) *DocumentStore {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &DocumentStore{
		docs: make(map[string]map[string]interface{}),
		log:  log.WithComponent("document_store"),
	}
}

var _ repository.DocumentStore = (*DocumentStore)(nil)

// GetDocument returns a deep copy of the stored fields and the existence
// flag. A never-written document reads as non-existent with empty fields.
func (s *DocumentStore) GetDocument(ctx context.Context, path string) (map[string]interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, exists := s.docs[path]
	if !exists {
		return map[string]interface{}{}, false
	}
	return model.DeepCopyMap(fields), true
}

// WriteDocument atomically overwrites the stored fields and marks the
// document existent. The input is deep-copied so the caller's map can never
// alias stored state.
func (s *DocumentStore) WriteDocument(ctx context.Context, path string, fields map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[path] = model.DeepCopyMap(fields)
	s.log.Debugf("wrote document %s (%d fields)", path, len(fields))
}

// DeleteDocument removes the stored fields and marks the document
// non-existent. Documents in subcollections under the deleted document are
// untouched.
func (s *DocumentStore) DeleteDocument(ctx context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, path)
	s.log.Debugf("deleted document %s", path)
}

// HasDocument reports whether a document exists at path.
func (s *DocumentStore) HasDocument(ctx context.Context, path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.docs[path]
	return ok
}

// ListDocuments returns deep copies of the existent documents directly under
// a collection path, ordered by document ID ascending.
func (s *DocumentStore) ListDocuments(ctx context.Context, collectionPath string) []repository.StoredDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []repository.StoredDocument
	for path, fields := range s.docs {
		if !paths.IsImmediateChild(collectionPath, path) {
			continue
		}
		segments := paths.Split(path)
		out = append(out, repository.StoredDocument{
			ID:     segments[len(segments)-1],
			Path:   path,
			Fields: model.DeepCopyMap(fields),
			Exists: true,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListCollections returns the IDs of collections directly under a document
// path, or the root collections when parentPath is empty, ordered ascending.
func (s *DocumentStore) ListCollections(ctx context.Context, parentPath string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parentSegs := paths.Split(parentPath)
	seen := make(map[string]bool)
	for path := range s.docs {
		segs := paths.Split(path)
		if len(segs) < len(parentSegs)+2 {
			continue
		}
		match := true
		for i := range parentSegs {
			if segs[i] != parentSegs[i] {
				match = false
				break
			}
		}
		if match {
			seen[segs[len(parentSegs)]] = true
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// collectionsMarker nests subcollections inside a document node of the debug
// dump. The same convention the Firestore export tooling uses.
const collectionsMarker = "__collections__"

// DumpTree returns the full nested collection -> document -> fields tree.
// Subcollections of a document appear under the "__collections__" key of its
// node. Diagnostics only; not a stable format.
func (s *DocumentStore) DumpTree(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	root := make(map[string]interface{})
	for path, fields := range s.docs {
		segs := paths.Split(path)
		node := root
		for i := 0; i+1 < len(segs); i += 2 {
			collection := childMap(node, segs[i])
			document := childMap(collection, segs[i+1])
			if i+2 < len(segs) {
				node = childMap(document, collectionsMarker)
				continue
			}
			for k, v := range model.DeepCopyMap(fields) {
				document[k] = v
			}
		}
	}
	return root
}

func childMap(parent map[string]interface{}, key string) map[string]interface{} {
	if existing, ok := parent[key].(map[string]interface{}); ok {
		return existing
	}
	m := make(map[string]interface{})
	parent[key] = m
	return m
}
