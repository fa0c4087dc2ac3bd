package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/events"
)

func TestNotificationWebhook(t *testing.T) {
	received := make(chan events.Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var e events.Event
		_ = json.Unmarshal(body, &e)
		received <- e
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	svc := NewNotificationService(zap.NewNop(), config.NotificationConfig{WebhookURL: srv.URL, WebhookTimeoutSeconds: 2})

	require.NoError(t, svc.Handle(context.Background(), events.Event{
		ID:     "evt-1",
		Type:   events.EventCaseSubmitted,
		CaseID: "case-1",
	}))

	got := <-received
	assert.Equal(t, "evt-1", got.ID)
	assert.Equal(t, events.EventCaseSubmitted, got.Type)
}

func TestNotificationWebhookErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewNotificationService(zap.NewNop(), config.NotificationConfig{WebhookURL: srv.URL})
	err := svc.sendWebhook(context.Background(), events.Event{Type: events.EventMediaDeleted})
	assert.EqualError(t, err, "webhook media_deleted: status 502")

	quiet := NewNotificationService(zap.NewNop(), config.NotificationConfig{})
	assert.NoError(t, quiet.sendWebhook(context.Background(), events.Event{Type: events.EventMediaDeleted}))
}
