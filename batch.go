package firestorefake

import (
	"context"

	"firestore-fake/internal/firestore/usecase"
)

// WriteBatch buffers set/update/delete operations and applies them in
// issuance order on Commit. Operations are validated as they are added, so
// Commit cannot fail halfway through. A batch commits at most once.
type WriteBatch struct {
	client *Client
	batch  *usecase.WriteBatch
}

// Set buffers a document set.
func (b *WriteBatch) Set(doc *DocumentRef, data map[string]interface{}, opts ...SetOption) error {
	merge := false
	for _, opt := range opts {
		opt(&merge)
	}
	return b.batch.Set(doc.Path, data, merge)
}

// Update buffers a document update.
func (b *WriteBatch) Update(doc *DocumentRef, data map[string]interface{}) error {
	return b.batch.Update(doc.Path, data)
}

// Delete buffers a document delete.
func (b *WriteBatch) Delete(doc *DocumentRef) error {
	return b.batch.Delete(doc.Path)
}

// Len returns the number of buffered operations.
func (b *WriteBatch) Len() int { return b.batch.Len() }

// Commit applies the buffered operations in issuance order.
func (b *WriteBatch) Commit(ctx context.Context) error {
	return b.batch.Commit(ctx)
}
