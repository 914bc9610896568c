package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

// ErrOptimisticLock is returned by Update when the row no longer matches
// the expected version and status.
var ErrOptimisticLock = apperrors.ErrConcurrentUpdate

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	task.Version = 1
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return apperrors.Upstream(err)
	}

	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Upstream(err)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Limit < 0 {
		return nil, apperrors.ErrInvalidLimit
	}

	query := r.db.WithContext(ctx).Model(&model.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.TaskerID != "" {
		query = query.Where("selected_tasker = ? OR targeted_tasker = ?", filter.TaskerID, filter.TaskerID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var tasks []model.Task
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}
	return tasks, nil
}

// ListOverdue returns open tasks whose end date is before now. It never
// changes them.
func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	if limit <= 0 {
		return nil, apperrors.ErrInvalidLimit
	}

	var tasks []model.Task
	query := r.db.WithContext(ctx).
		Where("status IN ? AND end_date < ?",
			[]constants.TaskStatus{constants.StatusActive, constants.StatusScheduled}, now).
		Order("end_date asc").Limit(limit)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, apperrors.Upstream(err)
	}

	return tasks, nil
}

// Update writes every mutable field of task, but only if the stored row is
// still at task.Version and expectedStatus. Zero affected rows means another
// writer got there first.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task, expectedStatus constants.TaskStatus) error {
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ? AND status = ?", task.ID, task.Version, expectedStatus).
		Updates(map[string]interface{}{
			"title":                      task.Title,
			"description":                task.Description,
			"category":                   task.Category,
			"area":                       task.Area,
			"min_payment":                task.MinPayment,
			"max_payment":                task.MaxPayment,
			"tags":                       gorm.Expr("?", jsonList(task.Tags)),
			"start_date":                 task.StartDate,
			"end_date":                   task.EndDate,
			"status":                     task.Status,
			"selected_tasker":            task.SelectedTasker,
			"agreed_time":                task.AgreedTime,
			"agreed_payment":             task.AgreedPayment,
			"tasker_completed_at":        task.TaskerCompletedAt,
			"customer_completed_at":      task.CustomerCompletedAt,
			"completion_notes":           task.CompletionNotes,
			"completion_photos":          gorm.Expr("?", jsonList(task.CompletionPhotos)),
			"customer_rating":            task.CustomerRating,
			"customer_review":            task.CustomerReview,
			"tasker_rating_for_customer": task.TaskerRatingForCustomer,
			"tasker_feedback":            task.TaskerFeedback,
			"schedule_cancel_reason":     task.ScheduleCancelReason,
			"updated_at":                 now,
			"version":                    gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return apperrors.Upstream(res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock.On(task.ID, "", expectedStatus)
	}

	task.Version++
	task.UpdatedAt = now
	return nil
}
