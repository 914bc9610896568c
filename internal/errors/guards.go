package errors

var (
	ErrDuplicateApplication     = newException(KindGuardViolation, "tasker already applied to this task")
	ErrTargetedTaskNoApply      = newException(KindGuardViolation, "targeted tasks do not accept open applications")
	ErrNotTargetedTask          = newException(KindGuardViolation, "task is not a targeted task")
	ErrApplicationNotConfirmed  = newException(KindGuardViolation, "application has not been confirmed by the tasker")
	ErrApplicationWrongTask     = newException(KindGuardViolation, "application does not belong to this task")
	ErrApplicationSelected      = newException(KindGuardViolation, "selected application cannot be withdrawn")
	ErrTimeOutOfRange           = newException(KindGuardViolation, "confirmed time is outside the task date range")
	ErrPaymentOutOfRange        = newException(KindGuardViolation, "payment is outside the task payment range")
	ErrInvalidPaymentRange      = newException(KindGuardViolation, "min payment must be positive and not exceed max payment")
	ErrInvalidDateRange         = newException(KindGuardViolation, "start date must not be after end date")
	ErrTargetedTaskerRequired   = newException(KindGuardViolation, "targeted task requires a targeted tasker")
	ErrCompletionPhotosRequired = newException(KindGuardViolation, "at least one completion photo is required")
	ErrAlreadyTaskerCompleted   = newException(KindGuardViolation, "tasker already marked this task complete")
	ErrAlreadyCustomerCompleted = newException(KindGuardViolation, "customer already marked this task complete")
	ErrInvalidRating            = newException(KindGuardViolation, "rating must be between 1 and 5")
	ErrInvalidApprovalStatus    = newException(KindGuardViolation, "unknown approval status")
	ErrTitleRequired            = newException(KindGuardViolation, "title is required")
)
