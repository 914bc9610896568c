package notifications

import (
	"context"

	"go.uber.org/zap"

	"task-marketplace.com/task-marketplace/internal/metrics"
)

// Dispatcher wraps a Notifier so that publish failures are logged and
// counted instead of returned.
type Dispatcher struct {
	notifier Notifier
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewDispatcher(notifier Notifier, logger *zap.Logger, m *metrics.Metrics) *Dispatcher {
	if notifier == nil {
		notifier = Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{notifier: notifier, logger: logger, metrics: m}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event TaskEvent) {
	if d == nil {
		return
	}
	if err := d.notifier.Publish(ctx, event); err != nil {
		d.metrics.ObserveNotifyFailure()
		d.logger.Warn("failed to publish task event",
			zap.String("type", string(event.Type)),
			zap.String("task_id", event.TaskID),
			zap.Error(err),
		)
	}
}
