// Package eventbus is the in-process pub/sub used to fan document change
// notifications out to snapshot listeners.
package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"firestore-fake/internal/shared/logger"
)

// Event is a generic bus event.
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	Source() string
}

// Handler handles one event.
type Handler func(ctx context.Context, event Event) error

// EventBus is an in-memory event bus. Handlers are keyed by a subscription
// ID so individual subscriptions can be removed without disturbing others.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string]map[string]Handler
	log      logger.Logger
	config   BusConfig
}

// BusConfig holds event bus configuration.
type BusConfig struct {
	// AsyncProcessing dispatches handlers on separate goroutines. The store
	// defaults to synchronous delivery, matching its single-threaded model.
	AsyncProcessing bool
}

// DefaultBusConfig returns the default configuration.
func DefaultBusConfig() BusConfig {
	return BusConfig{AsyncProcessing: false}
}

// NewEventBus creates an event bus with default configuration.
func NewEventBus(log logger.Logger) *EventBus {
	return NewEventBusWithConfig(log, DefaultBusConfig())
}

// NewEventBusWithConfig creates an event bus with custom configuration.
func NewEventBusWithConfig(log logger.Logger, config BusConfig) *EventBus {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &EventBus{
		handlers: make(map[string]map[string]Handler),
		log:      log.WithComponent("eventbus"),
		config:   config,
	}
}

// Subscribe registers a handler for an event type and returns the
// subscription ID used to remove it again.
func (eb *EventBus) Subscribe(eventType string, handler Handler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := uuid.NewString()
	if eb.handlers[eventType] == nil {
		eb.handlers[eventType] = make(map[string]Handler)
	}
	eb.handlers[eventType][id] = handler
	eb.log.Debugf("subscribed %s to event type %s", id, eventType)
	return id
}

// Unsubscribe removes a single subscription.
func (eb *EventBus) Unsubscribe(eventType, subscriptionID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.handlers[eventType], subscriptionID)
	if len(eb.handlers[eventType]) == 0 {
		delete(eb.handlers, eventType)
	}
	eb.log.Debugf("unsubscribed %s from event type %s", subscriptionID, eventType)
}

// Publish delivers an event to every handler registered for its type.
// Handler errors are logged; the first one is returned after all handlers
// ran.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	handlers := make([]Handler, 0, len(eb.handlers[event.Type()]))
	for _, h := range eb.handlers[event.Type()] {
		handlers = append(handlers, h)
	}
	eb.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}
	if eb.config.AsyncProcessing {
		return eb.publishAsync(ctx, event, handlers)
	}
	return eb.publishSync(ctx, event, handlers)
}

func (eb *EventBus) publishSync(ctx context.Context, event Event, handlers []Handler) error {
	var firstErr error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			eb.log.Errorf("handler failed for event %s: %v", event.Type(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (eb *EventBus) publishAsync(ctx context.Context, event Event, handlers []Handler) error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(handlers))

	for _, handler := range handlers {
		wg.Add(1)
		go func(h Handler) {
			defer wg.Done()
			if err := h(ctx, event); err != nil {
				errCh <- err
			}
		}(handler)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		eb.log.Errorf("handler failed for event %s: %v", event.Type(), err)
		return err
	}
	return nil
}

// PublishAndForget publishes without waiting for handlers to finish.
func (eb *EventBus) PublishAndForget(ctx context.Context, event Event) {
	go func() {
		if err := eb.Publish(ctx, event); err != nil {
			eb.log.Errorf("failed to publish event %s: %v", event.Type(), err)
		}
	}()
}

// SubscriberCount returns the number of subscriptions for an event type.
func (eb *EventBus) SubscriberCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}

// EventTypes returns every event type with at least one subscription.
func (eb *EventBus) EventTypes() []string {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	types := make([]string, 0, len(eb.handlers))
	for eventType := range eb.handlers {
		types = append(types, eventType)
	}
	return types
}

// BasicEvent implements Event.
type BasicEvent struct {
	eventType string
	data      interface{}
	timestamp time.Time
	source    string
}

// NewBasicEvent creates an event with an unknown source.
func NewBasicEvent(eventType string, data interface{}) Event {
	return NewBasicEventWithSource(eventType, data, "unknown")
}

// NewBasicEventWithSource creates an event tagged with its source component.
func NewBasicEventWithSource(eventType string, data interface{}, source string) Event {
	return &BasicEvent{
		eventType: eventType,
		data:      data,
		timestamp: time.Now(),
		source:    source,
	}
}

func (e *BasicEvent) Type() string         { return e.eventType }
func (e *BasicEvent) Data() interface{}    { return e.data }
func (e *BasicEvent) Timestamp() time.Time { return e.timestamp }
func (e *BasicEvent) Source() string       { return e.source }
