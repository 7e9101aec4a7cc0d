package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/events"
	"github.com/spec-kit/blood-bank-service/internal/service"
)

// DefaultQueueSize bounds the events buffered ahead of delivery.
const DefaultQueueSize = 256

var errQueueFull = errors.New("notification queue full")

// NotificationWorker moves notification delivery off the request path.
// Events that arrive while the queue is full are dropped and logged.
type NotificationWorker struct {
	svc    *service.NotificationService
	logger *zap.Logger
	queue  chan events.Event

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNotificationWorker builds a worker with a queue of size events.
func NewNotificationWorker(svc *service.NotificationService, logger *zap.Logger, size int) *NotificationWorker {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{svc: svc, logger: logger, queue: make(chan events.Event, size)}
}

// Subscribe enqueues every notification event published on dispatcher.
func (w *NotificationWorker) Subscribe(dispatcher events.Dispatcher) {
	for _, eventType := range service.NotificationEvents {
		dispatcher.Subscribe(eventType, w.enqueue)
	}
}

// Start runs the delivery loop until ctx is done or Stop is called.
func (w *NotificationWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop ends the loop after delivering whatever is still queued.
func (w *NotificationWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
		return nil
	default:
		return errQueueFull
	}
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case event := <-w.queue:
			w.deliver(event)
		}
	}
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case event := <-w.queue:
			w.deliver(event)
		default:
			return
		}
	}
}

// deliver runs detached from the request that published the event.
func (w *NotificationWorker) deliver(event events.Event) {
	if err := w.svc.Handle(context.Background(), event); err != nil {
		w.logger.Warn("notification delivery failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

// StartNotificationWorker wires svc to dispatcher through a queued worker
// and starts it.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, svc *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	w := NewNotificationWorker(svc, logger, DefaultQueueSize)
	w.Subscribe(dispatcher)
	w.Start(ctx)
	return w
}
