// Package usecase implements the engines on top of the document store: the
// mutation engine, the query entry point, buffered transactions, write
// batches and snapshot listeners.
package usecase

import (
	"time"

	"firestore-fake/internal/firestore/config"
	"firestore-fake/internal/firestore/domain/repository"
	"firestore-fake/internal/shared/eventbus"
	"firestore-fake/internal/shared/logger"
)

// FirestoreUsecase wires the engines together around one DocumentStore.
type FirestoreUsecase struct {
	store   repository.DocumentStore
	queries repository.QueryEngine
	events  *eventbus.EventBus
	cfg     *config.Config
	log     logger.Logger

	// now is the wall clock used to resolve server timestamps; tests
	// substitute a fixed clock.
	now func() time.Time
}

// NewFirestoreUsecase creates the engine bundle. events may be nil when no
// listener support is needed.
func NewFirestoreUsecase(
	store repository.DocumentStore,
	queries repository.QueryEngine,
	events *eventbus.EventBus,
	cfg *config.Config,
	log logger.Logger,
) *FirestoreUsecase {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &FirestoreUsecase{
		store:   store,
		queries: queries,
		events:  events,
		cfg:     cfg,
		log:     log.WithComponent("firestore_usecase"),
		now:     time.Now,
	}
}

// WithClock substitutes the wall clock, for tests.
func (uc *FirestoreUsecase) WithClock(now func() time.Time) *FirestoreUsecase {
	uc.now = now
	return uc
}

// Store exposes the underlying document store for diagnostics.
func (uc *FirestoreUsecase) Store() repository.DocumentStore {
	return uc.store
}

// Config exposes the effective configuration.
func (uc *FirestoreUsecase) Config() *config.Config {
	return uc.cfg
}
