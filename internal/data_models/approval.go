package dto

import "task-marketplace.com/task-marketplace/internal/constants"

type SetApprovalRequest struct {
	Status constants.ApprovalStatus `json:"status"`
	Reason string                   `json:"reason"`
}

