package eventbus

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := NewEventBus(nil)

	var received []Event
	bus.Subscribe("document.updated", func(ctx context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := bus.Publish(context.Background(), NewBasicEventWithSource("document.updated", "payload", "test"))
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "payload", received[0].Data())
	assert.Equal(t, "test", received[0].Source())
	assert.False(t, received[0].Timestamp().IsZero())
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), NewBasicEvent("document.created", nil)))
}

func TestUnsubscribe_RemovesOnlyOneSubscription(t *testing.T) {
	bus := NewEventBus(nil)

	var first, second int
	id := bus.Subscribe("document.deleted", func(ctx context.Context, event Event) error {
		first++
		return nil
	})
	bus.Subscribe("document.deleted", func(ctx context.Context, event Event) error {
		second++
		return nil
	})
	require.Equal(t, 2, bus.SubscriberCount("document.deleted"))

	bus.Unsubscribe("document.deleted", id)
	require.Equal(t, 1, bus.SubscriberCount("document.deleted"))

	require.NoError(t, bus.Publish(context.Background(), NewBasicEvent("document.deleted", nil)))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestPublish_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus(nil)
	boom := stderrors.New("boom")

	var called int
	bus.Subscribe("document.updated", func(ctx context.Context, event Event) error {
		return boom
	})
	bus.Subscribe("document.updated", func(ctx context.Context, event Event) error {
		called++
		return nil
	})

	err := bus.Publish(context.Background(), NewBasicEvent("document.updated", nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, called)
}

func TestEventTypes(t *testing.T) {
	bus := NewEventBus(nil)
	bus.Subscribe("a", func(ctx context.Context, event Event) error { return nil })
	bus.Subscribe("b", func(ctx context.Context, event Event) error { return nil })

	assert.ElementsMatch(t, []string{"a", "b"}, bus.EventTypes())
}
