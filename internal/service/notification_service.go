package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/config"
	"github.com/spec-kit/blood-bank-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		logger: loggerOrNop(logger),
		cfg:    cfg,
	}
}

// NotificationEvents lists the event types Handle reacts to.
var NotificationEvents = []events.EventType{
	events.EventUserRegistered,
	events.EventAppointmentScheduled,
	events.EventBloodRequestCreated,
	events.EventInventoryUpdated,
	events.EventInventoryShortage,
}

// Handle routes one event to its notification.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventUserRegistered:
		return n.handleUserRegistered(ctx, event)
	case events.EventAppointmentScheduled:
		return n.handleAppointmentScheduled(ctx, event)
	case events.EventBloodRequestCreated:
		return n.handleBloodRequestCreated(ctx, event)
	case events.EventInventoryUpdated:
		return n.handleInventoryUpdated(ctx, event)
	case events.EventInventoryShortage:
		return n.handleInventoryShortage(ctx, event)
	default:
		return fmt.Errorf("unhandled event type %q", event.Type)
	}
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAppointmentScheduled(ctx context.Context, event events.Event) error {
	n.logger.Info("AppointmentScheduled", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBloodRequestCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BloodRequestCreated", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInventoryUpdated(_ context.Context, event events.Event) error {
	n.logger.Debug("InventoryUpdated", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleInventoryShortage(ctx context.Context, event events.Event) error {
	n.logger.Warn("InventoryShortage", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}
