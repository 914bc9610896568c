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
)

// PaymentReleaser is told about every task that reached completed.
type PaymentReleaser interface {
	Release(ctx context.Context, task *model.Task) error
}

// CompletionProtocol finalizes a scheduled task only after the selected
// tasker and the owner have each marked it complete.
type CompletionProtocol struct {
	transitioner
	payments PaymentReleaser
	now      func() time.Time
}

func NewCompletionProtocol(deps Deps, payments PaymentReleaser) *CompletionProtocol {
	return &CompletionProtocol{
		transitioner: newTransitioner(deps),
		payments:     payments,
		now:          time.Now,
	}
}

type TaskerCompletion struct {
	Notes    string
	Photos   []string
	Feedback string
	// RatingForCustomer is optional; when set it must be 1..5.
	RatingForCustomer *int
}

type CustomerCompletion struct {
	Rating *int
	Review string
}

type CompletionResult struct {
	Task          *model.Task `json:"task"`
	BothCompleted bool        `json:"both_completed"`
}

func (p *CompletionProtocol) TaskerComplete(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	in TaskerCompletion,
) (*CompletionResult, error) {
	task, err := p.apply(ctx, actor, taskID, constants.ActionTaskerComplete, func(task *model.Task) error {
		photos := nonEmpty(in.Photos)
		if len(photos) == 0 {
			return apperrors.ErrCompletionPhotosRequired.On(task.ID, constants.ActionTaskerComplete, task.Status)
		}
		if err := checkRating(task, constants.ActionTaskerComplete, in.RatingForCustomer); err != nil {
			return err
		}

		completedAt := p.now().UTC()
		task.TaskerCompletedAt = &completedAt
		task.CompletionNotes = strings.TrimSpace(in.Notes)
		task.CompletionPhotos = photos
		task.TaskerFeedback = strings.TrimSpace(in.Feedback)
		task.TaskerRatingForCustomer = in.RatingForCustomer
		return p.finalizeIfBoth(task)
	})
	if err != nil {
		return nil, err
	}
	return p.result(ctx, task), nil
}

func (p *CompletionProtocol) CustomerComplete(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	in CustomerCompletion,
) (*CompletionResult, error) {
	task, err := p.apply(ctx, actor, taskID, constants.ActionCustomerComplete, func(task *model.Task) error {
		if err := checkRating(task, constants.ActionCustomerComplete, in.Rating); err != nil {
			return err
		}

		completedAt := p.now().UTC()
		task.CustomerCompletedAt = &completedAt
		task.CustomerRating = in.Rating
		task.CustomerReview = strings.TrimSpace(in.Review)
		return p.finalizeIfBoth(task)
	})
	if err != nil {
		return nil, err
	}
	return p.result(ctx, task), nil
}

// finalizeIfBoth moves the task to completed within the same conditional
// write that recorded the second confirmation.
func (p *CompletionProtocol) finalizeIfBoth(task *model.Task) error {
	if !task.BothCompleted() {
		return nil
	}
	if err := lifecycle.Check(task, constants.ActionFinalize, lifecycle.System); err != nil {
		return err
	}
	task.Status = constants.StatusCompleted
	return nil
}

func (p *CompletionProtocol) result(ctx context.Context, task *model.Task) *CompletionResult {
	both := task.Status == constants.StatusCompleted
	if both {
		p.release(ctx, task)
	}
	return &CompletionResult{Task: task, BothCompleted: both}
}

// A failed release is logged and counted. Completion is not rolled back.
func (p *CompletionProtocol) release(ctx context.Context, task *model.Task) {
	if p.payments == nil {
		return
	}
	err := p.payments.Release(ctx, task)
	p.Metrics.ObservePaymentRelease(err)
	if err != nil {
		p.Logger.Error("payment release failed", zap.String("task_id", task.ID), zap.Error(err))
	}
}

func checkRating(task *model.Task, action constants.Action, rating *int) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return apperrors.ErrInvalidRating.On(task.ID, action, task.Status)
	}
	return nil
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
