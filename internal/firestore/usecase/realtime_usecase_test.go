package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestore-fake/internal/firestore/adapter/persistence/memory"
	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/shared/errors"
	"firestore-fake/internal/shared/eventbus"
)

func newListenerUsecase(t *testing.T) *FirestoreUsecase {
	t.Helper()
	store := memory.NewDocumentStore(nil)
	bus := eventbus.NewEventBus(nil)
	return NewFirestoreUsecase(store, memory.NewQueryEngine(store, nil), bus, nil, nil)
}

func receiveSnapshot(t *testing.T, ch <-chan *model.DocumentSnapshot) *model.DocumentSnapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestSubscribeDocument_ImmediateSnapshotThenUpdates(t *testing.T) {
	uc := newListenerUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.SetDocument(ctx, "rooms/r1", map[string]interface{}{"topic": "go"}, false))

	ch, cancel, err := uc.SubscribeDocument(ctx, "rooms/r1")
	require.NoError(t, err)
	defer cancel()

	first := receiveSnapshot(t, ch)
	require.True(t, first.Exists())
	assert.Equal(t, "go", first.Data()["topic"])

	require.NoError(t, uc.UpdateDocument(ctx, "rooms/r1", map[string]interface{}{"topic": "fake firestore"}))
	second := receiveSnapshot(t, ch)
	assert.Equal(t, "fake firestore", second.Data()["topic"])

	require.NoError(t, uc.DeleteDocument(ctx, "rooms/r1"))
	third := receiveSnapshot(t, ch)
	assert.False(t, third.Exists())
}

func TestSubscribeDocument_MissingDocumentStillDeliversSnapshot(t *testing.T) {
	uc := newListenerUsecase(t)
	ctx := context.Background()

	ch, cancel, err := uc.SubscribeDocument(ctx, "rooms/nope")
	require.NoError(t, err)
	defer cancel()

	first := receiveSnapshot(t, ch)
	assert.False(t, first.Exists())

	require.NoError(t, uc.SetDocument(ctx, "rooms/nope", map[string]interface{}{"v": 1}, false))
	second := receiveSnapshot(t, ch)
	assert.True(t, second.Exists())
}

func TestSubscribeDocument_IgnoresOtherDocuments(t *testing.T) {
	uc := newListenerUsecase(t)
	ctx := context.Background()

	ch, cancel, err := uc.SubscribeDocument(ctx, "rooms/r1")
	require.NoError(t, err)
	defer cancel()
	receiveSnapshot(t, ch)

	require.NoError(t, uc.SetDocument(ctx, "rooms/r2", map[string]interface{}{"v": 1}, false))

	select {
	case snap := <-ch:
		t.Fatalf("unexpected snapshot for %s", snap.Path)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeDocument_CancelClosesChannel(t *testing.T) {
	uc := newListenerUsecase(t)
	ctx := context.Background()

	ch, cancel, err := uc.SubscribeDocument(ctx, "rooms/r1")
	require.NoError(t, err)
	receiveSnapshot(t, ch)

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// Writes after cancel go nowhere.
	require.NoError(t, uc.SetDocument(ctx, "rooms/r1", map[string]interface{}{"v": 1}, false))
}

func TestSubscribeDocument_InvalidPath(t *testing.T) {
	uc := newListenerUsecase(t)

	_, _, err := uc.SubscribeDocument(context.Background(), "rooms")
	require.Error(t, err)
	assert.True(t, errors.IsPathError(err))
}

func TestSubscribeDocument_NilBusDeliversOnlyInitialSnapshot(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	ch, cancel, err := uc.SubscribeDocument(ctx, "rooms/r1")
	require.NoError(t, err)
	defer cancel()

	receiveSnapshot(t, ch)
	_, open := <-ch
	assert.False(t, open)
}
