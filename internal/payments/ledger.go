// Package payments records the release trigger emitted when both parties
// have completed a task. Talking to a payment gateway is out of scope; the
// ledger row is what a settlement job would consume.
package payments

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	model "task-marketplace.com/task-marketplace/internal/models"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

type LedgerReleaser struct {
	repo   *repository.PaymentRepository
	logger *zap.Logger
}

func NewLedgerReleaser(repo *repository.PaymentRepository, logger *zap.Logger) *LedgerReleaser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerReleaser{repo: repo, logger: logger}
}

// Release is idempotent per task.
func (l *LedgerReleaser) Release(ctx context.Context, task *model.Task) error {
	if task.SelectedTasker == nil || task.AgreedPayment == nil {
		return fmt.Errorf("task %s has no agreed terms to release", task.ID)
	}

	created, err := l.repo.Record(ctx, &model.PaymentRelease{
		TaskID:     task.ID,
		CustomerID: task.CustomerID,
		TaskerID:   *task.SelectedTasker,
		Amount:     *task.AgreedPayment,
		ReleasedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if !created {
		l.logger.Info("payment release already recorded", zap.String("task_id", task.ID))
		return nil
	}

	l.logger.Info("payment released",
		zap.String("task_id", task.ID),
		zap.String("tasker_id", *task.SelectedTasker),
		zap.Int64("amount", *task.AgreedPayment),
	)
	return nil
}
