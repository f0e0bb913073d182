package repository

import (
	"context"

	"firestore-fake/internal/firestore/domain/model"
)

// StoredDocument is one deep-copied document row handed out by the store for
// collection scans.
type StoredDocument struct {
	ID     string
	Path   string
	Fields map[string]interface{}
	Exists bool
}

// DocumentStore owns the in-memory tree of collections and documents. Every
// read hands out an independent deep copy; the store never leaks mutable
// internal references. Paths are assumed to be validated by callers.
type DocumentStore interface {
	// GetDocument returns a deep copy of the stored fields and whether the
	// document exists. A never-written document reads as non-existent with
	// empty fields.
	GetDocument(ctx context.Context, path string) (fields map[string]interface{}, exists bool)

	// WriteDocument atomically overwrites the stored fields and marks the
	// document existent. Missing intermediate collections and documents come
	// into being implicitly.
	WriteDocument(ctx context.Context, path string, fields map[string]interface{})

	// DeleteDocument removes the stored fields and marks the document
	// non-existent. Deleting an absent document is a no-op.
	DeleteDocument(ctx context.Context, path string)

	// HasDocument reports whether a document exists at path.
	HasDocument(ctx context.Context, path string) bool

	// ListDocuments returns deep copies of the existent documents directly
	// under a collection path, ordered by document ID ascending.
	ListDocuments(ctx context.Context, collectionPath string) []StoredDocument

	// ListCollections returns the IDs of the collections directly under a
	// document path, or the root collections when parentPath is empty,
	// ordered ascending.
	ListCollections(ctx context.Context, parentPath string) []string

	// DumpTree returns the full nested collection -> document -> fields tree.
	// Intended for test diagnostics only; the shape is not a stability
	// guarantee.
	DumpTree(ctx context.Context) map[string]interface{}
}

// QueryEngine executes queries against one collection of the store.
type QueryEngine interface {
	ExecuteQuery(ctx context.Context, query model.Query) ([]*model.DocumentSnapshot, error)
}
