package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Record stores the release once per task. It reports false when a release
// for the task already existed.
func (r *PaymentRepository) Record(ctx context.Context, release *model.PaymentRelease) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(release)
	if res.Error != nil {
		return false, apperrors.Upstream(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *PaymentRepository) FindByTask(ctx context.Context, taskID string) (*model.PaymentRelease, error) {
	var release model.PaymentRelease
	err := r.db.WithContext(ctx).First(&release, "task_id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Upstream(err)
	}
	return &release, nil
}
