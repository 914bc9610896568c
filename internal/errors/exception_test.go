package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"task-marketplace.com/task-marketplace/internal/constants"
)

func TestException_OnKeepsIdentity(t *testing.T) {
	err := ErrTaskNotActive.On("task-1", constants.ActionSelectTasker, constants.StatusScheduled)

	assert.ErrorIs(t, err, ErrTaskNotActive)
	assert.NotErrorIs(t, err, ErrTaskNotScheduled)
	assert.Equal(t, "task-1", err.TaskID)
	assert.Empty(t, ErrTaskNotActive.TaskID, "sentinel must not be mutated")
	assert.Equal(t, "task is not active (task task-1, action select_tasker, status scheduled)", err.Error())
}

func TestStatusCodeAndKind(t *testing.T) {
	cases := []struct {
		err    error
		kind   Kind
		status int
	}{
		{ErrTaskTerminal, KindInvalidTransition, http.StatusConflict},
		{ErrNotTaskOwner, KindForbidden, http.StatusForbidden},
		{ErrPaymentOutOfRange, KindGuardViolation, http.StatusUnprocessableEntity},
		{ErrNotApproved, KindNotApproved, http.StatusForbidden},
		{ErrConcurrentUpdate, KindConflict, http.StatusConflict},
		{ErrTaskNotFound, KindNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", ErrInvalidPayload), KindBadRequest, http.StatusBadRequest},
		{errors.New("boom"), "", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err), tc.err.Error())
		assert.Equal(t, tc.status, StatusCode(tc.err), tc.err.Error())
	}
}

func TestUpstream(t *testing.T) {
	assert.NoError(t, Upstream(nil))

	cause := errors.New("dial tcp: connection refused")
	err := Upstream(cause)
	assert.True(t, IsKind(err, KindUpstreamUnavailable))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))

	assert.Equal(t, ErrTaskNotFound, Upstream(ErrTaskNotFound))
}
