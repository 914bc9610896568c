// Package lifecycle holds the task state machine: which action may be taken
// from which status, by whom, and where it leads.
package lifecycle

import (
	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type actorGuard func(task *model.Task, actor model.Actor) *apperrors.Exception

type stateGuard func(task *model.Task) *apperrors.Exception

type rule struct {
	from  constants.TaskStatus
	to    constants.TaskStatus
	actor actorGuard
	guard stateGuard
}

// System is the actor used for automatic transitions.
var System = model.Actor{ID: "system", Role: constants.RoleSystem}

var rules = map[constants.Action]rule{
	constants.ActionEdit:                {from: constants.StatusActive, actor: owner},
	constants.ActionApply:               {from: constants.StatusActive, actor: role(constants.RoleTasker)},
	constants.ActionWithdraw:            {from: constants.StatusActive, actor: role(constants.RoleTasker)},
	constants.ActionConfirmAvailability: {from: constants.StatusActive, actor: role(constants.RoleTasker)},
	constants.ActionSelectTasker:        {from: constants.StatusActive, to: constants.StatusScheduled, actor: owner},
	constants.ActionTaskerComplete:      {from: constants.StatusScheduled, actor: selectedTasker, guard: taskerNotCompleted},
	constants.ActionCustomerComplete:    {from: constants.StatusScheduled, actor: owner, guard: customerNotCompleted},
	constants.ActionFinalize:            {from: constants.StatusScheduled, to: constants.StatusCompleted, actor: system, guard: bothCompleted},
	constants.ActionCancelSchedule:      {from: constants.StatusScheduled, to: constants.StatusActive, actor: ownerOrSelected},
	constants.ActionCancelTask:          {from: constants.StatusActive, to: constants.StatusCancelled, actor: owner},
}

// Check reports whether actor may perform action on task in its current
// status. The status is checked before the actor so that a wrong-state
// request is reported as such regardless of who sent it.
func Check(task *model.Task, action constants.Action, actor model.Actor) error {
	r, ok := rules[action]
	if !ok {
		return apperrors.ErrUnknownAction.On(task.ID, action, task.Status)
	}

	if task.Status != r.from {
		return stateError(task.Status, r.from).On(task.ID, action, task.Status)
	}

	if err := r.actor(task, actor); err != nil {
		return err.On(task.ID, action, task.Status)
	}

	if r.guard != nil {
		if err := r.guard(task); err != nil {
			return err.On(task.ID, action, task.Status)
		}
	}

	return nil
}

// Next returns the status action leads to. ok is false when the action
// leaves the status unchanged.
func Next(action constants.Action) (constants.TaskStatus, bool) {
	r, found := rules[action]
	if !found || r.to == "" {
		return "", false
	}
	return r.to, true
}

// Allowed lists the actions actor could take on task right now, in a
// stable order. Input-dependent guards (bounds, photos) are not evaluated.
func Allowed(task *model.Task, actor model.Actor) []constants.Action {
	var out []constants.Action
	for _, action := range order {
		if action == constants.ActionFinalize {
			continue
		}
		if Check(task, action, actor) == nil {
			out = append(out, action)
		}
	}
	return out
}

var order = []constants.Action{
	constants.ActionEdit,
	constants.ActionApply,
	constants.ActionWithdraw,
	constants.ActionConfirmAvailability,
	constants.ActionSelectTasker,
	constants.ActionTaskerComplete,
	constants.ActionCustomerComplete,
	constants.ActionFinalize,
	constants.ActionCancelSchedule,
	constants.ActionCancelTask,
}

func stateError(current, required constants.TaskStatus) *apperrors.Exception {
	if current.IsTerminal() {
		return apperrors.ErrTaskTerminal
	}
	if required == constants.StatusScheduled {
		return apperrors.ErrTaskNotScheduled
	}
	return apperrors.ErrTaskNotActive
}
