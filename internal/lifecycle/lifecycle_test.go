package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

var (
	customer = model.Actor{ID: "cust-1", Role: constants.RoleCustomer}
	stranger = model.Actor{ID: "cust-2", Role: constants.RoleCustomer}
	tasker   = model.Actor{ID: "tasker-1", Role: constants.RoleTasker}
	other    = model.Actor{ID: "tasker-2", Role: constants.RoleTasker}
)

func strPtr(s string) *string { return &s }

func activeTask() *model.Task {
	return &model.Task{ID: "task-1", CustomerID: customer.ID, Status: constants.StatusActive}
}

func scheduledTask() *model.Task {
	t := activeTask()
	t.Status = constants.StatusScheduled
	t.SelectedTasker = strPtr(tasker.ID)
	return t
}

func TestCheck_TransitionTable(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		task   *model.Task
		action constants.Action
		actor  model.Actor
		kind   apperrors.Kind
	}{
		{"owner selects on active", activeTask(), constants.ActionSelectTasker, customer, ""},
		{"select on scheduled", scheduledTask(), constants.ActionSelectTasker, customer, apperrors.KindInvalidTransition},
		{"stranger selects", activeTask(), constants.ActionSelectTasker, stranger, apperrors.KindForbidden},
		{"tasker selects", activeTask(), constants.ActionSelectTasker, tasker, apperrors.KindForbidden},
		{"selected tasker completes", scheduledTask(), constants.ActionTaskerComplete, tasker, ""},
		{"other tasker completes", scheduledTask(), constants.ActionTaskerComplete, other, apperrors.KindForbidden},
		{"owner cannot tasker-complete", scheduledTask(), constants.ActionTaskerComplete, customer, apperrors.KindForbidden},
		{"tasker completes active", activeTask(), constants.ActionTaskerComplete, tasker, apperrors.KindInvalidTransition},
		{"owner completes", scheduledTask(), constants.ActionCustomerComplete, customer, ""},
		{"owner cancels schedule", scheduledTask(), constants.ActionCancelSchedule, customer, ""},
		{"selected tasker cancels schedule", scheduledTask(), constants.ActionCancelSchedule, tasker, ""},
		{"other tasker cancels schedule", scheduledTask(), constants.ActionCancelSchedule, other, apperrors.KindForbidden},
		{"cancel schedule on active", activeTask(), constants.ActionCancelSchedule, customer, apperrors.KindInvalidTransition},
		{"owner cancels active", activeTask(), constants.ActionCancelTask, customer, ""},
		{"owner cancels scheduled", scheduledTask(), constants.ActionCancelTask, customer, apperrors.KindInvalidTransition},
		{"tasker cancels task", activeTask(), constants.ActionCancelTask, tasker, apperrors.KindForbidden},
		{"owner edits active", activeTask(), constants.ActionEdit, customer, ""},
		{"owner edits scheduled", scheduledTask(), constants.ActionEdit, customer, apperrors.KindInvalidTransition},
		{"tasker applies", activeTask(), constants.ActionApply, tasker, ""},
		{"customer applies", activeTask(), constants.ActionApply, customer, apperrors.KindForbidden},
		{"finalize by user", func() *model.Task {
			task := scheduledTask()
			task.TaskerCompletedAt = &now
			task.CustomerCompletedAt = &now
			return task
		}(), constants.ActionFinalize, customer, apperrors.KindForbidden},
		{"finalize one side", func() *model.Task {
			task := scheduledTask()
			task.TaskerCompletedAt = &now
			return task
		}(), constants.ActionFinalize, System, apperrors.KindInvalidTransition},
		{"finalize both sides", func() *model.Task {
			task := scheduledTask()
			task.TaskerCompletedAt = &now
			task.CustomerCompletedAt = &now
			return task
		}(), constants.ActionFinalize, System, ""},
		{"tasker completes twice", func() *model.Task {
			task := scheduledTask()
			task.TaskerCompletedAt = &now
			return task
		}(), constants.ActionTaskerComplete, tasker, apperrors.KindGuardViolation},
		{"customer completes twice", func() *model.Task {
			task := scheduledTask()
			task.CustomerCompletedAt = &now
			return task
		}(), constants.ActionCustomerComplete, customer, apperrors.KindGuardViolation},
		{"unknown action", activeTask(), constants.Action("teleport"), customer, apperrors.KindInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.task, tc.action, tc.actor)
			if tc.kind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperrors.KindOf(err))
		})
	}
}

func TestCheck_TerminalStates(t *testing.T) {
	for _, status := range []constants.TaskStatus{constants.StatusCompleted, constants.StatusCancelled} {
		task := activeTask()
		task.Status = status

		err := Check(task, constants.ActionCancelTask, customer)
		assert.ErrorIs(t, err, apperrors.ErrTaskTerminal)
	}
}

func TestCheck_ErrorCarriesContext(t *testing.T) {
	err := Check(scheduledTask(), constants.ActionSelectTasker, customer)

	var exc *apperrors.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, "task-1", exc.TaskID)
	assert.Equal(t, constants.ActionSelectTasker, exc.Action)
	assert.Equal(t, constants.StatusScheduled, exc.Status)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotActive)
}

func TestNext(t *testing.T) {
	to, ok := Next(constants.ActionSelectTasker)
	assert.True(t, ok)
	assert.Equal(t, constants.StatusScheduled, to)

	to, ok = Next(constants.ActionCancelSchedule)
	assert.True(t, ok)
	assert.Equal(t, constants.StatusActive, to)

	_, ok = Next(constants.ActionTaskerComplete)
	assert.False(t, ok)
}

func TestAllowed(t *testing.T) {
	assert.Equal(t,
		[]constants.Action{constants.ActionEdit, constants.ActionSelectTasker, constants.ActionCancelTask},
		Allowed(activeTask(), customer),
	)
	assert.Equal(t,
		[]constants.Action{constants.ActionTaskerComplete, constants.ActionCancelSchedule},
		Allowed(scheduledTask(), tasker),
	)
	assert.Empty(t, Allowed(scheduledTask(), other))
}
