package model

import (
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
)

type Task struct {
	ID          string   `gorm:"primaryKey;size:36" json:"id"`
	CustomerID  string   `gorm:"size:64;not null;index" json:"customer_id"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `gorm:"not null" json:"description"`
	Category    string   `gorm:"size:64;index" json:"category"`
	Area        string   `gorm:"size:128" json:"area"`
	MinPayment  int64    `gorm:"not null" json:"min_payment"`
	MaxPayment  int64    `gorm:"not null" json:"max_payment"`
	Tags        []string `gorm:"serializer:json" json:"tags"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`

	Status         constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	IsTargeted     bool                 `gorm:"not null;default:false" json:"is_targeted"`
	TargetedTasker *string              `gorm:"size:64;index" json:"targeted_tasker,omitempty"`
	SelectedTasker *string              `gorm:"size:64;index" json:"selected_tasker,omitempty"`
	AgreedTime     *time.Time           `json:"agreed_time,omitempty"`
	AgreedPayment  *int64               `json:"agreed_payment,omitempty"`

	TaskerCompletedAt   *time.Time `json:"tasker_completed_at,omitempty"`
	CustomerCompletedAt *time.Time `json:"customer_completed_at,omitempty"`
	CompletionNotes     string     `json:"completion_notes,omitempty"`
	CompletionPhotos    []string   `gorm:"serializer:json" json:"completion_photos,omitempty"`

	CustomerRating          *int   `json:"customer_rating,omitempty"`
	CustomerReview          string `json:"customer_review,omitempty"`
	TaskerRatingForCustomer *int   `json:"tasker_rating_for_customer,omitempty"`
	TaskerFeedback          string `json:"tasker_feedback,omitempty"`

	ScheduleCancelReason string `json:"schedule_cancel_reason,omitempty"`

	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Task) IsOwner(userID string) bool {
	return userID != "" && t.CustomerID == userID
}

func (t *Task) IsSelectedTasker(userID string) bool {
	return userID != "" && t.SelectedTasker != nil && *t.SelectedTasker == userID
}

func (t *Task) IsTargetedTasker(userID string) bool {
	return t.IsTargeted && userID != "" && t.TargetedTasker != nil && *t.TargetedTasker == userID
}

func (t *Task) BothCompleted() bool {
	return t.TaskerCompletedAt != nil && t.CustomerCompletedAt != nil
}

// ClearSchedule drops everything that was agreed or recorded since selection.
func (t *Task) ClearSchedule() {
	t.SelectedTasker = nil
	t.AgreedTime = nil
	t.AgreedPayment = nil
	t.TaskerCompletedAt = nil
	t.CustomerCompletedAt = nil
	t.CompletionNotes = ""
	t.CompletionPhotos = nil
	t.TaskerFeedback = ""
	t.TaskerRatingForCustomer = nil
}

func (t *Task) PaymentInRange(amount int64) bool {
	return amount >= t.MinPayment && amount <= t.MaxPayment
}

// TimeInRange is inclusive on both ends.
func (t *Task) TimeInRange(at time.Time) bool {
	return !at.Before(t.StartDate) && !at.After(t.EndDate)
}

type TaskFilter struct {
	Status     constants.TaskStatus
	CustomerID string
	TaskerID   string
	Category   string
	Limit      int
	Offset     int
}
