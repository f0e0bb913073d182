package firestorefake

import (
	"context"

	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/shared/paths"
)

func splitPath(path string) []string { return paths.Split(path) }

// DocumentRef is a thin, stateless handle addressing one document. It holds
// no store state; every operation resolves the path anew.
type DocumentRef struct {
	client *Client
	// Path is the full slash-delimited document path, e.g. "users/alice".
	Path string
	// ID is the final path segment.
	ID string
}

// Collection returns a handle for a subcollection of this document.
func (d *DocumentRef) Collection(id string) *CollectionRef {
	return d.client.Collection(paths.Append(d.Path, id))
}

// Parent returns the collection owning this document.
func (d *DocumentRef) Parent() *CollectionRef {
	parent, err := paths.Parent(d.Path)
	if err != nil {
		return d.client.Collection("")
	}
	return d.client.Collection(parent)
}

// Get reads the document. A never-written or deleted document yields a
// snapshot with Exists() == false.
func (d *DocumentRef) Get(ctx context.Context) (*DocumentSnapshot, error) {
	return d.client.uc.GetDocument(ctx, d.Path)
}

// Set writes data to the document. Without options all prior fields are
// cleared first; with MergeAll fields absent from data are preserved.
func (d *DocumentRef) Set(ctx context.Context, data map[string]interface{}, opts ...SetOption) error {
	merge := false
	for _, opt := range opts {
		opt(&merge)
	}
	return d.client.uc.SetDocument(ctx, d.Path, data, merge)
}

// Update applies data on top of the current fields. Keys containing dots
// address nested fields; sentinel values resolve against the live document.
// Updating a deleted document creates it fresh.
func (d *DocumentRef) Update(ctx context.Context, data map[string]interface{}) error {
	return d.client.uc.UpdateDocument(ctx, d.Path, data)
}

// Delete removes the document. Subcollections underneath it survive.
func (d *DocumentRef) Delete(ctx context.Context) error {
	return d.client.uc.DeleteDocument(ctx, d.Path)
}

// Snapshots delivers the current snapshot immediately, then one snapshot per
// subsequent write or delete, until cancel is called.
func (d *DocumentRef) Snapshots(ctx context.Context) (<-chan *DocumentSnapshot, func(), error) {
	return d.client.uc.SubscribeDocument(ctx, d.Path)
}

// Collections lists the IDs of this document's subcollections.
func (d *DocumentRef) Collections(ctx context.Context) ([]string, error) {
	return d.client.uc.ListCollections(ctx, d.Path)
}

// SetOption customizes DocumentRef.Set.
type SetOption func(merge *bool)

// MergeAll preserves fields not present in the incoming data.
func MergeAll() SetOption {
	return func(merge *bool) { *merge = true }
}

// CollectionRef is a thin, stateless handle addressing one collection.
type CollectionRef struct {
	client *Client
	// Path is the full slash-delimited collection path, e.g. "users".
	Path string
	// ID is the final path segment.
	ID string
}

// Doc returns a handle for a document in this collection.
func (c *CollectionRef) Doc(id string) *DocumentRef {
	return c.client.Doc(paths.Append(c.Path, id))
}

// NewDoc returns a handle with a freshly generated document ID. Nothing is
// written until an operation runs on the handle.
func (c *CollectionRef) NewDoc() *DocumentRef {
	return c.Doc(model.NewAutoID())
}

// Parent returns the parent document of a subcollection, or nil for a root
// collection.
func (c *CollectionRef) Parent() *DocumentRef {
	parent, err := paths.Parent(c.Path)
	if err != nil {
		return nil
	}
	return c.client.Doc(parent)
}

// Add creates a document with a generated ID and returns its handle.
func (c *CollectionRef) Add(ctx context.Context, data map[string]interface{}) (*DocumentRef, error) {
	path, err := c.client.uc.AddDocument(ctx, c.Path, data)
	if err != nil {
		return nil, err
	}
	return c.client.Doc(path), nil
}

// Documents returns snapshots of every existent document in the collection,
// ordered by document ID ascending.
func (c *CollectionRef) Documents(ctx context.Context) ([]*DocumentSnapshot, error) {
	return c.Query().Documents(ctx)
}

// Query returns an unconstrained query over the collection.
func (c *CollectionRef) Query() *Query {
	return &Query{client: c.client, q: model.Query{CollectionPath: c.Path}}
}

// Where returns a query filtered by a single condition. Supported operators:
// ==, <, <=, >, >=, array-contains, array-contains-any, in.
func (c *CollectionRef) Where(fieldPath, op string, value interface{}) *Query {
	return c.Query().Where(fieldPath, op, value)
}

// OrderBy returns a query ordered by a field.
func (c *CollectionRef) OrderBy(fieldPath string, direction Direction) *Query {
	return c.Query().OrderBy(fieldPath, direction)
}

// Limit returns a query truncated to the first n results.
func (c *CollectionRef) Limit(n int) *Query {
	return c.Query().Limit(n)
}

// StartAfterDocument returns a query resuming after the given snapshot in
// the query's ordering.
func (c *CollectionRef) StartAfterDocument(snapshot *DocumentSnapshot) *Query {
	return c.Query().StartAfterDocument(snapshot)
}
