package services

import (
	"context"

	"go.uber.org/zap"

	"task-marketplace.com/task-marketplace/internal/constants"
	"task-marketplace.com/task-marketplace/internal/lifecycle"
	"task-marketplace.com/task-marketplace/internal/metrics"
	model "task-marketplace.com/task-marketplace/internal/models"
	"task-marketplace.com/task-marketplace/internal/notifications"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Tasks   *repository.TaskRepository
	Events  *notifications.Dispatcher
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

type transitioner struct {
	Deps
}

func newTransitioner(deps Deps) transitioner {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return transitioner{deps}
}

var actionEvents = map[constants.Action]constants.EventType{
	constants.ActionSelectTasker:   constants.EventTaskScheduled,
	constants.ActionCancelSchedule: constants.EventScheduleCancelled,
	constants.ActionCancelTask:     constants.EventTaskCancelled,
}

// apply loads the task, checks action against the state machine, lets
// mutate edit the record, and writes it back conditioned on the status and
// version that were read. mutate runs after the table checks so that its
// own input guards are only reached for a legal action.
func (t *transitioner) apply(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	action constants.Action,
	mutate func(task *model.Task) error,
) (*model.Task, error) {
	task, err := t.run(ctx, actor, taskID, action, mutate)
	t.Metrics.ObserveAction(action, err)
	if err != nil {
		t.Logger.Info("task action rejected",
			zap.String("task_id", taskID),
			zap.String("action", string(action)),
			zap.String("actor_id", actor.ID),
			zap.Error(err),
		)
		return nil, err
	}
	return task, nil
}

func (t *transitioner) run(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	action constants.Action,
	mutate func(task *model.Task) error,
) (*model.Task, error) {
	task, err := t.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Check(task, action, actor); err != nil {
		return nil, err
	}

	from := task.Status
	if mutate != nil {
		if err := mutate(task); err != nil {
			return nil, err
		}
	}

	if to, ok := lifecycle.Next(action); ok {
		task.Status = to
	}

	if err := t.Tasks.Update(ctx, task, from); err != nil {
		return nil, err
	}

	t.Logger.Info("task updated",
		zap.String("task_id", task.ID),
		zap.String("action", string(action)),
		zap.String("actor_id", actor.ID),
		zap.String("from", string(from)),
		zap.String("to", string(task.Status)),
		zap.Uint("version", task.Version),
	)

	eventType, ok := actionEvents[action]
	if !ok {
		eventType = constants.EventTaskUpdated
	}
	if task.Status == constants.StatusCompleted {
		eventType = constants.EventTaskCompleted
	}
	t.Events.Dispatch(ctx, notifications.NewTaskEvent(eventType, task, actor))

	return task, nil
}
