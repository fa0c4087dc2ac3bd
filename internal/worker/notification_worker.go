package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/events"
)

// ErrWorkerStopped is returned for events published after Stop.
var ErrWorkerStopped = errors.New("notification worker stopped")

// EventHandler processes one event off the request path.
type EventHandler interface {
	Handle(ctx context.Context, event events.Event) error
}

// NotificationWorker drains queued events into a handler on its own goroutine.
type NotificationWorker struct {
	queue   chan events.Event
	handler EventHandler
	logger  *zap.Logger
	wg      sync.WaitGroup

	// mu guards stopped and the close of queue against concurrent sends.
	mu      sync.RWMutex
	stopped bool
}

// StartNotificationWorker subscribes to every event type and starts delivery.
// Events published while the queue is full are dropped and logged.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, handler EventHandler, logger *zap.Logger, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	w := &NotificationWorker{
		queue:   make(chan events.Event, queueSize),
		handler: handler,
		logger:  logger,
	}
	for _, eventType := range events.AllTypes {
		dispatcher.Subscribe(eventType, w.enqueue)
	}

	w.wg.Add(1)
	go w.run(context.WithoutCancel(ctx))
	return w
}

func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrWorkerStopped
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("case_id", event.CaseID))
	}
	return nil
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for event := range w.queue {
		if err := w.handler.Handle(ctx, event); err != nil {
			w.logger.Warn("notification failed",
				zap.String("event_type", string(event.Type)),
				zap.String("case_id", event.CaseID),
				zap.Error(err))
		}
	}
}

// Stop closes the queue and waits for queued events to be handled.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
