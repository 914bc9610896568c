package errors

// ErrConcurrentUpdate is returned when the row changed between read and
// conditional write.
var ErrConcurrentUpdate = newException(KindConflict, "task was modified concurrently")

var ErrApplicationConflict = newException(KindConflict, "application was modified concurrently")
