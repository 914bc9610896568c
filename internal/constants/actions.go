package constants

// Action names an operation attempted against a task. Only some of them
// move the task between statuses; the rest are checked against the same table.
type Action string

const (
	ActionEdit                Action = "edit"
	ActionApply               Action = "apply"
	ActionWithdraw            Action = "withdraw"
	ActionConfirmAvailability Action = "confirm_availability"
	ActionSelectTasker        Action = "select_tasker"
	ActionTaskerComplete      Action = "tasker_complete"
	ActionCustomerComplete    Action = "customer_complete"
	ActionFinalize            Action = "finalize"
	ActionCancelSchedule      Action = "cancel_schedule"
	ActionCancelTask          Action = "cancel_task"
)
