package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/events"
)

// recentLimit caps the activity lists embedded in the current-user view.
const recentLimit = 5

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// publish emits event; subscriber failures never fail the request.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
