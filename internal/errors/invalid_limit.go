package errors

var ErrInvalidLimit = newException(KindBadRequest, "limit must be positive")
