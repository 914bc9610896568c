package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type ApprovalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

// GetApprovalStatus reads the current approval row. A tasker that has never
// been reviewed is pending.
func (r *ApprovalRepository) GetApprovalStatus(ctx context.Context, userID string) (*model.TaskerApproval, error) {
	var approval model.TaskerApproval
	err := r.db.WithContext(ctx).First(&approval, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.TaskerApproval{UserID: userID, Status: constants.ApprovalPending}, nil
		}
		return nil, apperrors.Upstream(err)
	}
	return &approval, nil
}

func (r *ApprovalRepository) SetApprovalStatus(ctx context.Context, approval *model.TaskerApproval) error {
	approval.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "rejection_reason", "updated_at"}),
	}).Create(approval).Error
	if err != nil {
		return apperrors.Upstream(err)
	}
	return nil
}
