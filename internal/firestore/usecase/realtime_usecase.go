package usecase

import (
	"context"

	"firestore-fake/internal/firestore/domain/model"
	"firestore-fake/internal/shared/eventbus"
	"firestore-fake/internal/shared/paths"
)

// Document change event types carried over the event bus.
const (
	eventDocumentCreated = "document.created"
	eventDocumentUpdated = "document.updated"
	eventDocumentDeleted = "document.deleted"
)

// DocumentEvent is the bus payload for a document change.
type DocumentEvent struct {
	Path     string
	Snapshot *model.DocumentSnapshot
}

// publishDocumentEvent reads the document's post-change state and fans it
// out over the bus. A nil bus disables notifications entirely.
func (uc *FirestoreUsecase) publishDocumentEvent(ctx context.Context, eventType, path string) {
	if uc.events == nil {
		return
	}
	fields, exists := uc.store.GetDocument(ctx, path)
	event := eventbus.NewBasicEventWithSource(eventType, DocumentEvent{
		Path:     path,
		Snapshot: model.NewDocumentSnapshot(path, fields, exists),
	}, "firestore_usecase")
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.log.Errorf("publishing %s for %s: %v", eventType, path, err)
	}
}

// SubscribeDocument delivers the document's current snapshot immediately,
// then one snapshot per subsequent write or delete. The returned cancel
// function detaches the listener and closes the channel; after the channel
// buffer fills up further notifications for this listener are dropped.
func (uc *FirestoreUsecase) SubscribeDocument(ctx context.Context, path string) (<-chan *model.DocumentSnapshot, func(), error) {
	if err := paths.ValidateDocumentPath(path); err != nil {
		return nil, nil, err
	}

	ch := make(chan *model.DocumentSnapshot, uc.cfg.ListenerBuffer)

	snapshot, err := uc.GetDocument(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	ch <- snapshot

	if uc.events == nil {
		close(ch)
		return ch, func() {}, nil
	}

	handler := func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Data().(DocumentEvent)
		if !ok || payload.Path != path {
			return nil
		}
		select {
		case ch <- payload.Snapshot:
		default:
			uc.log.Warnf("listener buffer full, dropping snapshot for %s", path)
		}
		return nil
	}

	subscriptions := map[string]string{
		eventDocumentCreated: uc.events.Subscribe(eventDocumentCreated, handler),
		eventDocumentUpdated: uc.events.Subscribe(eventDocumentUpdated, handler),
		eventDocumentDeleted: uc.events.Subscribe(eventDocumentDeleted, handler),
	}

	cancel := func() {
		for eventType, id := range subscriptions {
			uc.events.Unsubscribe(eventType, id)
		}
		close(ch)
	}
	return ch, cancel, nil
}
