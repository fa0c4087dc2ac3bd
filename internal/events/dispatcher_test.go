package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcherContinuesAfterHandlerFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	webhookDown := errors.New("webhook down")
	var calls []string
	d.Subscribe(EventCaseSubmitted, func(context.Context, Event) error {
		calls = append(calls, "first")
		return webhookDown
	})
	d.Subscribe(EventCaseSubmitted, func(context.Context, Event) error {
		calls = append(calls, "second")
		panic("nil map")
	})
	d.Subscribe(EventCaseSubmitted, func(context.Context, Event) error {
		calls = append(calls, "third")
		return nil
	})
	d.Subscribe(EventMediaDeleted, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventCaseSubmitted, CaseID: "case-1"})

	assert.ErrorIs(t, err, webhookDown)
	assert.ErrorContains(t, err, "handler panic: nil map")
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	assert.Equal(t, 2, logs.FilterMessage("event handler failed").Len())
}

func TestDispatcherWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventCaseAssigned}))
}
