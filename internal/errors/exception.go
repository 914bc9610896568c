package errors

import (
	"errors"
	"fmt"
	"net/http"

	"task-marketplace.com/task-marketplace/internal/constants"
)

type Kind string

const (
	KindInvalidTransition   Kind = "invalid_transition"
	KindForbidden           Kind = "forbidden"
	KindGuardViolation      Kind = "guard_violation"
	KindNotApproved         Kind = "not_approved"
	KindConflict            Kind = "conflict"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindNotFound            Kind = "not_found"
	KindBadRequest          Kind = "bad_request"
	KindUnauthenticated     Kind = "unauthenticated"
)

var kindStatus = map[Kind]int{
	KindInvalidTransition:   http.StatusConflict,
	KindForbidden:           http.StatusForbidden,
	KindGuardViolation:      http.StatusUnprocessableEntity,
	KindNotApproved:         http.StatusForbidden,
	KindConflict:            http.StatusConflict,
	KindUpstreamUnavailable: http.StatusServiceUnavailable,
	KindNotFound:            http.StatusNotFound,
	KindBadRequest:          http.StatusBadRequest,
	KindUnauthenticated:     http.StatusUnauthorized,
}

type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int

	TaskID string
	Action constants.Action
	Status constants.TaskStatus

	cause error
}

func newException(kind Kind, message string) *Exception {
	return &Exception{
		Kind:       kind,
		Message:    message,
		StatusCode: kindStatus[kind],
	}
}

func (e *Exception) Error() string {
	msg := e.Message
	if e.TaskID != "" {
		msg = fmt.Sprintf("%s (task %s", msg, e.TaskID)
		if e.Action != "" {
			msg += ", action " + string(e.Action)
		}
		if e.Status != "" {
			msg += ", status " + string(e.Status)
		}
		msg += ")"
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Exception) Unwrap() error {
	return e.cause
}

// Is matches sentinels by kind and message so that a copy carrying task
// context still satisfies errors.Is against the sentinel it came from.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func (e *Exception) clone() *Exception {
	c := *e
	return &c
}

// On attaches the task the rejected action was aimed at.
func (e *Exception) On(taskID string, action constants.Action, status constants.TaskStatus) *Exception {
	c := e.clone()
	c.TaskID = taskID
	c.Action = action
	c.Status = status
	return c
}

// Wrap keeps the underlying error reachable through errors.Unwrap.
func (e *Exception) Wrap(cause error) *Exception {
	c := e.clone()
	c.cause = cause
	return c
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Upstream wraps an infrastructure failure unless it already carries a kind.
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Exception
	if errors.As(err, &appErr) {
		return err
	}
	return ErrUpstreamUnavailable.Wrap(err)
}
