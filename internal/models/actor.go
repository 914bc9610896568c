package model

import "task-marketplace.com/task-marketplace/internal/constants"

// Actor is the caller identity passed explicitly into every operation.
// Ownership and selection are always re-checked against the task record.
type Actor struct {
	ID   string         `json:"id"`
	Role constants.Role `json:"role"`
}

func (a Actor) Is(role constants.Role) bool {
	return a.Role == role
}

// All lists every persisted model for migrations.
func All() []any {
	return []any{&Task{}, &Application{}, &TaskerApproval{}, &PaymentRelease{}}
}
