// Package notifications publishes fire-and-forget task events for UIs and
// other listeners. Publishing never decides whether a transition succeeded.
package notifications

import (
	"context"
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type Notifier interface {
	Publish(ctx context.Context, event TaskEvent) error
}

type TaskEvent struct {
	Type          constants.EventType  `json:"type"`
	TaskID        string               `json:"task_id"`
	Status        constants.TaskStatus `json:"status"`
	Version       uint                 `json:"version"`
	ActorID       string               `json:"actor_id"`
	ApplicationID string               `json:"application_id,omitempty"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

func NewTaskEvent(eventType constants.EventType, task *model.Task, actor model.Actor) TaskEvent {
	return TaskEvent{
		Type:       eventType,
		TaskID:     task.ID,
		Status:     task.Status,
		Version:    task.Version,
		ActorID:    actor.ID,
		OccurredAt: time.Now().UTC(),
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, TaskEvent) error { return nil }
