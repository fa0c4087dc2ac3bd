package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/events"
)

// NotificationService forwards domain events to the log and an optional webhook.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
	client *resty.Client
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	timeout := time.Duration(cfg.WebhookTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
		client: client,
	}
}

// Handle routes one event to its notification.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventCaseSubmitted, events.EventCaseUpdated:
		return n.handleCaseSubmitted(ctx, event)
	case events.EventCaseStatusChanged:
		return n.handleCaseStatusChanged(ctx, event)
	default:
		return n.handleGeneric(ctx, event)
	}
}

func (n *NotificationService) handleCaseSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("CaseSubmitted", zap.String("case_id", event.CaseID), zap.Any("payload", event.Payload))
	return n.sendWebhook(ctx, event)
}

func (n *NotificationService) handleCaseStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("CaseStatusChanged", zap.String("case_id", event.CaseID), zap.Any("payload", event.Payload))
	return n.sendWebhook(ctx, event)
}

func (n *NotificationService) handleGeneric(ctx context.Context, event events.Event) error {
	n.logger.Debug("CaseEvent",
		zap.String("event_type", string(event.Type)),
		zap.String("case_id", event.CaseID))
	return n.sendWebhook(ctx, event)
}

// sendWebhook posts the event once; delivery is not retried.
func (n *NotificationService) sendWebhook(ctx context.Context, event events.Event) error {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return nil
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(n.cfg.WebhookURL)
	if err != nil {
		return fmt.Errorf("webhook %s: %w", event.Type, err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook %s: status %d", event.Type, resp.StatusCode())
	}
	n.logger.Debug("webhook delivered",
		zap.String("event_type", string(event.Type)),
		zap.Int("status", resp.StatusCode()))
	return nil
}
