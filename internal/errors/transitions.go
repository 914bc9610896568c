package errors

var (
	ErrTaskNotActive    = newException(KindInvalidTransition, "task is not active")
	ErrTaskNotScheduled = newException(KindInvalidTransition, "task is not scheduled")
	ErrTaskTerminal     = newException(KindInvalidTransition, "task is already finalized")
	ErrUnknownAction    = newException(KindInvalidTransition, "action is not allowed in any state")
	ErrNotBothCompleted = newException(KindInvalidTransition, "both parties must mark the task complete")
)
