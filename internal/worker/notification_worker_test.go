package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/blood-bank-service/internal/config"
	"github.com/spec-kit/blood-bank-service/internal/events"
	"github.com/spec-kit/blood-bank-service/internal/service"
)

func TestNotificationWorker_DeliversQueuedEventsOnStop(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	dispatcher := events.NewInMemoryDispatcher()
	svc := service.NewNotificationService(logger, config.NotificationConfig{WebhookURL: "http://hooks.local"})
	w := StartNotificationWorker(context.Background(), dispatcher, svc, logger)

	require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventInventoryShortage, "u1", events.InventoryPayload{Units: 0})))
	require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventBloodRequestCreated, "u1", nil)))
	w.Stop()

	assert.Equal(t, 1, logs.FilterMessage("InventoryShortage").Len())
	assert.Equal(t, 1, logs.FilterMessage("BloodRequestCreated").Len())
	assert.Equal(t, 2, logs.FilterMessage("sendWebhookNotificationStub").Len())
}

func TestNotificationWorker_FullQueueRejects(t *testing.T) {
	svc := service.NewNotificationService(zap.NewNop(), config.NotificationConfig{})
	w := NewNotificationWorker(svc, zap.NewNop(), 1)

	evt := events.NewEvent(events.EventUserRegistered, "u1", nil)
	assert.NoError(t, w.enqueue(context.Background(), evt))
	assert.ErrorIs(t, w.enqueue(context.Background(), evt), errQueueFull)
}
