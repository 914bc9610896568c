package model

import "time"

type PaymentRelease struct {
	TaskID     string    `gorm:"primaryKey;size:36" json:"task_id"`
	CustomerID string    `gorm:"size:64;not null" json:"customer_id"`
	TaskerID   string    `gorm:"size:64;not null" json:"tasker_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	ReleasedAt time.Time `gorm:"not null" json:"released_at"`
}
