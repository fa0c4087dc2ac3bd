package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/case-service/internal/events"
)

type recordingHandler struct {
	mu   sync.Mutex
	seen []events.EventType
}

func (h *recordingHandler) Handle(_ context.Context, e events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, e.Type)
	if e.Type == events.EventMediaDeleted {
		return errors.New("webhook down")
	}
	return nil
}

func TestNotificationWorkerDeliversQueuedEvents(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	handler := &recordingHandler{}

	w := StartNotificationWorker(context.Background(), dispatcher, handler, zap.New(core), 8)

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.Event{Type: events.EventCaseSubmitted, CaseID: "case-1"})
	_ = dispatcher.Publish(ctx, events.Event{Type: events.EventMediaDeleted, CaseID: "case-1"})
	w.Stop()

	assert.Equal(t, []events.EventType{events.EventCaseSubmitted, events.EventMediaDeleted}, handler.seen)
	assert.Equal(t, 1, logs.FilterMessage("notification failed").Len())
}

func TestNotificationWorkerRejectsEventsAfterStop(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.New(core))
	handler := &recordingHandler{}

	w := StartNotificationWorker(context.Background(), dispatcher, handler, zap.New(core), 8)
	w.Stop()
	w.Stop()

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventCaseSubmitted, CaseID: "case-1"})
	require.ErrorIs(t, err, ErrWorkerStopped)
	assert.NotContains(t, err.Error(), "handler panic")
	assert.Empty(t, handler.seen)
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}
