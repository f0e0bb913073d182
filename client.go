package firestorefake

import (
	"context"

	"gopkg.in/yaml.v3"

	"firestore-fake/internal/firestore/adapter/persistence/memory"
	"firestore-fake/internal/firestore/config"
	"firestore-fake/internal/firestore/usecase"
	"firestore-fake/internal/shared/eventbus"
	"firestore-fake/internal/shared/logger"
)

// Client is the root handle to one in-memory store instance.
type Client struct {
	uc  *usecase.FirestoreUsecase
	log logger.Logger
}

// Option customizes a Client at construction time.
type Option func(*options)

type options struct {
	cfg *config.Config
	log logger.Logger
}

// WithConfig supplies an explicit configuration instead of the defaults.
func WithConfig(cfg *Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger supplies the logger used by the store engines.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// New creates an empty in-memory store.
func New(opts ...Option) *Client {
	o := &options{
		cfg: config.Default(),
		log: logger.NoopLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}

	store := memory.NewDocumentStore(o.log)
	queries := memory.NewQueryEngine(store, o.log)
	events := eventbus.NewEventBus(o.log)
	uc := usecase.NewFirestoreUsecase(store, queries, events, o.cfg, o.log)

	return &Client{uc: uc, log: o.log}
}

// Collection returns a handle for the collection at path. Purely an
// addressing operation; the path is validated when an operation runs.
func (c *Client) Collection(path string) *CollectionRef {
	return &CollectionRef{client: c, Path: path, ID: lastSegment(path)}
}

// Doc returns a handle for the document at path. Purely an addressing
// operation; the path is validated when an operation runs.
func (c *Client) Doc(path string) *DocumentRef {
	return &DocumentRef{client: c, Path: path, ID: lastSegment(path)}
}

// Collections lists the root collection IDs.
func (c *Client) Collections(ctx context.Context) ([]string, error) {
	return c.uc.ListCollections(ctx, "")
}

// RunTransaction executes fn inside a buffered transaction. All reads must
// happen before the first write; buffered writes apply atomically only when
// fn succeeds and its result passes validation.
func (c *Client) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx *Transaction) (interface{}, error)) (map[string]interface{}, error) {
	return c.uc.RunTransaction(ctx, func(ctx context.Context, tx *usecase.Transaction) (interface{}, error) {
		return fn(ctx, &Transaction{client: c, tx: tx})
	})
}

// Batch creates an empty write batch.
func (c *Client) Batch() *WriteBatch {
	return &WriteBatch{client: c, batch: c.uc.NewWriteBatch()}
}

// DumpTree returns the full collection -> document -> fields tree. Test
// diagnostics only; the shape is not a stability guarantee.
func (c *Client) DumpTree(ctx context.Context) map[string]interface{} {
	return c.uc.DumpTree(ctx)
}

// DumpYAML renders the full tree as YAML for test diagnostics.
func (c *Client) DumpYAML(ctx context.Context) (string, error) {
	out, err := yaml.Marshal(c.uc.DumpTree(ctx))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func lastSegment(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
