package errors

var ErrTaskIDRequired = newException(KindBadRequest, "task id is required")

var ErrApplicationIDRequired = newException(KindBadRequest, "application id is required")

var ErrInvalidPayload = newException(KindBadRequest, "invalid JSON payload")
