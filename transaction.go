package firestorefake

import (
	"context"

	"firestore-fake/internal/firestore/usecase"
)

// Transaction is the handle passed to a RunTransaction callback. Reads run
// eagerly against committed state; writes are buffered and applied in
// issuance order only when the callback succeeds. Issuing a read after the
// first write fails the operation.
type Transaction struct {
	client *Client
	tx     *usecase.Transaction
}

// Get reads a document inside the transaction. It does not observe this
// transaction's own buffered writes.
func (t *Transaction) Get(ctx context.Context, doc *DocumentRef) (*DocumentSnapshot, error) {
	return t.tx.Get(ctx, doc.Path)
}

// Set buffers a document set.
func (t *Transaction) Set(ctx context.Context, doc *DocumentRef, data map[string]interface{}, opts ...SetOption) error {
	merge := false
	for _, opt := range opts {
		opt(&merge)
	}
	return t.tx.Set(ctx, doc.Path, data, merge)
}

// Update buffers a document update.
func (t *Transaction) Update(ctx context.Context, doc *DocumentRef, data map[string]interface{}) error {
	return t.tx.Update(ctx, doc.Path, data)
}

// Delete buffers a document delete.
func (t *Transaction) Delete(ctx context.Context, doc *DocumentRef) error {
	return t.tx.Delete(ctx, doc.Path)
}
