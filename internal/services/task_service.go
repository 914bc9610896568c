package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/lifecycle"
	model "task-marketplace.com/task-marketplace/internal/models"
	"task-marketplace.com/task-marketplace/internal/notifications"
)

type TaskService struct {
	transitioner
}

func NewTaskService(deps Deps) *TaskService {
	return &TaskService{newTransitioner(deps)}
}

type CreateTaskInput struct {
	Title          string
	Description    string
	Category       string
	Area           string
	MinPayment     int64
	MaxPayment     int64
	StartDate      time.Time
	EndDate        time.Time
	Tags           []string
	TargetedTasker string
}

// EditTaskInput holds the fields to change; nil leaves a field as is.
type EditTaskInput struct {
	Title       *string
	Description *string
	Category    *string
	Area        *string
	MinPayment  *int64
	MaxPayment  *int64
	StartDate   *time.Time
	EndDate     *time.Time
	Tags        *[]string
}

func (s *TaskService) CreateTask(ctx context.Context, actor model.Actor, in CreateTaskInput) (*model.Task, error) {
	if actor.ID == "" || !actor.Is(constants.RoleCustomer) {
		return nil, apperrors.ErrRoleNotPermitted
	}

	task := &model.Task{
		CustomerID:  actor.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
		Area:        in.Area,
		MinPayment:  in.MinPayment,
		MaxPayment:  in.MaxPayment,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		Tags:        in.Tags,
		Status:      constants.StatusActive,
	}
	if in.TargetedTasker != "" {
		targeted := in.TargetedTasker
		task.IsTargeted = true
		task.TargetedTasker = &targeted
	}

	if err := validateTerms(task); err != nil {
		return nil, err
	}

	if err := s.Tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.Logger.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("customer_id", actor.ID),
		zap.Bool("targeted", task.IsTargeted),
	)
	s.Events.Dispatch(ctx, notifications.NewTaskEvent(constants.EventTaskCreated, task, actor))
	return task, nil
}

func (s *TaskService) EditTask(ctx context.Context, actor model.Actor, taskID string, in EditTaskInput) (*model.Task, error) {
	return s.apply(ctx, actor, taskID, constants.ActionEdit, func(task *model.Task) error {
		if in.Title != nil {
			task.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			task.Description = *in.Description
		}
		if in.Category != nil {
			task.Category = *in.Category
		}
		if in.Area != nil {
			task.Area = *in.Area
		}
		if in.MinPayment != nil {
			task.MinPayment = *in.MinPayment
		}
		if in.MaxPayment != nil {
			task.MaxPayment = *in.MaxPayment
		}
		if in.StartDate != nil {
			task.StartDate = in.StartDate.UTC()
		}
		if in.EndDate != nil {
			task.EndDate = in.EndDate.UTC()
		}
		if in.Tags != nil {
			task.Tags = *in.Tags
		}
		return validateTerms(task)
	})
}

func (s *TaskService) CancelTask(ctx context.Context, actor model.Actor, taskID string) (*model.Task, error) {
	return s.apply(ctx, actor, taskID, constants.ActionCancelTask, nil)
}

// CancelSchedule puts a scheduled task back on the market. Applications are
// left untouched, so the owner may select again.
func (s *TaskService) CancelSchedule(ctx context.Context, actor model.Actor, taskID, reason string) (*model.Task, error) {
	return s.apply(ctx, actor, taskID, constants.ActionCancelSchedule, func(task *model.Task) error {
		task.ClearSchedule()
		task.ScheduleCancelReason = strings.TrimSpace(reason)
		return nil
	})
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}
	return s.Tasks.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	return s.Tasks.List(ctx, filter)
}

// ListOverdue reports open tasks past their end date. Nothing is changed.
func (s *TaskService) ListOverdue(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	return s.Tasks.ListOverdue(ctx, now, limit)
}

func (s *TaskService) AllowedActions(task *model.Task, actor model.Actor) []constants.Action {
	return lifecycle.Allowed(task, actor)
}

func validateTerms(task *model.Task) error {
	if task.Title == "" {
		return apperrors.ErrTitleRequired.On(task.ID, "", task.Status)
	}
	if task.MinPayment <= 0 || task.MinPayment > task.MaxPayment {
		return apperrors.ErrInvalidPaymentRange.On(task.ID, "", task.Status)
	}
	if task.StartDate.IsZero() || task.EndDate.IsZero() || task.StartDate.After(task.EndDate) {
		return apperrors.ErrInvalidDateRange.On(task.ID, "", task.Status)
	}
	if task.IsTargeted && (task.TargetedTasker == nil || *task.TargetedTasker == "") {
		return apperrors.ErrTargetedTaskerRequired.On(task.ID, "", task.Status)
	}
	return nil
}
