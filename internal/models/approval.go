package model

import (
	"time"

	"task-marketplace.com/task-marketplace/internal/constants"
)

type TaskerApproval struct {
	UserID          string                   `gorm:"primaryKey;size:64" json:"user_id"`
	Status          constants.ApprovalStatus `gorm:"type:varchar(20);not null" json:"status"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	UpdatedAt       time.Time                `json:"updated_at"`
}
