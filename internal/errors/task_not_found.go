package errors

var ErrTaskNotFound = newException(KindNotFound, "task not found")

var ErrApplicationNotFound = newException(KindNotFound, "application not found")
