package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application. The (task, tasker) unique index backs
// up the caller's duplicate check when two requests race.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	app.Version = 1
	app.CreatedAt = now
	app.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateApplication.On(app.TaskID, "", "")
		}
		return apperrors.Upstream(err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.Upstream(err)
	}
	return &app, nil
}

// FindByTaskAndTasker returns (nil, nil) when the tasker has not applied.
func (r *ApplicationRepository) FindByTaskAndTasker(ctx context.Context, taskID, taskerID string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND tasker_id = ?", taskID, taskerID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Upstream(err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByTask(ctx context.Context, taskID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.Upstream(err)
	}
	return apps, nil
}

func (r *ApplicationRepository) ListByTasker(ctx context.Context, taskerID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Where("tasker_id = ?", taskerID).
		Order("created_at desc").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.Upstream(err)
	}
	return apps, nil
}

// Update is version-checked like TaskRepository.Update.
func (r *ApplicationRepository) Update(ctx context.Context, app *model.Application) error {
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ? AND version = ?", app.ID, app.Version).
		Updates(map[string]interface{}{
			"proposed_payment":    app.ProposedPayment,
			"note":                app.Note,
			"confirmed_by_tasker": app.ConfirmedByTasker,
			"confirmed_time":      app.ConfirmedTime,
			"confirmed_payment":   app.ConfirmedPayment,
			"updated_at":          now,
			"version":             gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return apperrors.Upstream(res.Error)
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrApplicationConflict.On(app.TaskID, "", "")
	}

	app.Version++
	app.UpdatedAt = now
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, app *model.Application) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", app.ID, app.Version).
		Delete(&model.Application{})
	if res.Error != nil {
		return apperrors.Upstream(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrApplicationConflict.On(app.TaskID, "", "")
	}
	return nil
}
