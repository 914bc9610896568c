package model

import (
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
)

type Application struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	TaskID            string     `gorm:"size:36;not null;uniqueIndex:idx_application_task_tasker" json:"task_id"`
	TaskerID          string     `gorm:"size:64;not null;uniqueIndex:idx_application_task_tasker;index" json:"tasker_id"`
	ProposedPayment   int64      `gorm:"not null" json:"proposed_payment"`
	Note              string     `json:"note,omitempty"`
	ConfirmedByTasker bool       `gorm:"not null;default:false" json:"confirmed_by_tasker"`
	ConfirmedTime     *time.Time `json:"confirmed_time,omitempty"`
	ConfirmedPayment  *int64     `json:"confirmed_payment,omitempty"`
	Targeted          bool       `gorm:"not null;default:false" json:"targeted"`
	Version           uint       `gorm:"not null;default:1" json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ApplicationView is an application with its display status resolved
// against the current task record.
type ApplicationView struct {
	Application
	Status constants.ApplicationStatus `json:"status"`
}
