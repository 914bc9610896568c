package lifecycle

import (
	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

func owner(task *model.Task, actor model.Actor) *apperrors.Exception {
	if !actor.Is(constants.RoleCustomer) || !task.IsOwner(actor.ID) {
		return apperrors.ErrNotTaskOwner
	}
	return nil
}

func selectedTasker(task *model.Task, actor model.Actor) *apperrors.Exception {
	if !actor.Is(constants.RoleTasker) || !task.IsSelectedTasker(actor.ID) {
		return apperrors.ErrNotSelectedTasker
	}
	return nil
}

func ownerOrSelected(task *model.Task, actor model.Actor) *apperrors.Exception {
	if owner(task, actor) == nil || selectedTasker(task, actor) == nil {
		return nil
	}
	return apperrors.ErrNotOwnerOrSelected
}

func system(_ *model.Task, actor model.Actor) *apperrors.Exception {
	if actor != System {
		return apperrors.ErrSystemOnlyAction
	}
	return nil
}

func role(r constants.Role) actorGuard {
	return func(_ *model.Task, actor model.Actor) *apperrors.Exception {
		if actor.ID == "" || !actor.Is(r) {
			return apperrors.ErrRoleNotPermitted
		}
		return nil
	}
}

func taskerNotCompleted(task *model.Task) *apperrors.Exception {
	if task.TaskerCompletedAt != nil {
		return apperrors.ErrAlreadyTaskerCompleted
	}
	return nil
}

func customerNotCompleted(task *model.Task) *apperrors.Exception {
	if task.CustomerCompletedAt != nil {
		return apperrors.ErrAlreadyCustomerCompleted
	}
	return nil
}

func bothCompleted(task *model.Task) *apperrors.Exception {
	if !task.BothCompleted() {
		return apperrors.ErrNotBothCompleted
	}
	return nil
}
