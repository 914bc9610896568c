package dto

import (
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type CreateTaskRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Area           string    `json:"area"`
	MinPayment     int64     `json:"min_payment"`
	MaxPayment     int64     `json:"max_payment"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Tags           []string  `json:"tags"`
	TargetedTasker string    `json:"targeted_tasker"`
}

type EditTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Area        *string    `json:"area"`
	MinPayment  *int64     `json:"min_payment"`
	MaxPayment  *int64     `json:"max_payment"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Tags        *[]string  `json:"tags"`
}

type ListTasksQuery struct {
	Status     constants.TaskStatus `query:"status"`
	CustomerID string               `query:"customer_id"`
	TaskerID   string               `query:"tasker_id"`
	Category   string               `query:"category"`
	Limit      int                  `query:"limit"`
	Offset     int                  `query:"offset"`
}

type CancelScheduleRequest struct {
	Reason string `json:"reason"`
}

// TaskResponse is a task plus the actions the caller may take on it now.
type TaskResponse struct {
	*model.Task
	AllowedActions []constants.Action `json:"allowed_actions"`
}
