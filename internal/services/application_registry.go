package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/lifecycle"
	model "task-marketplace.com/task-marketplace/internal/models"
	"task-marketplace.com/task-marketplace/internal/notifications"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

// ApplicationRegistry manages taskers' applications to tasks and the single
// active -> scheduled transition that selecting one of them causes.
type ApplicationRegistry struct {
	transitioner
	apps *repository.ApplicationRepository
}

func NewApplicationRegistry(deps Deps, apps *repository.ApplicationRepository) *ApplicationRegistry {
	return &ApplicationRegistry{transitioner: newTransitioner(deps), apps: apps}
}

// DeriveStatus computes what an application looks like from the task's
// point of view. It is never stored.
func DeriveStatus(task *model.Task, app *model.Application) constants.ApplicationStatus {
	switch {
	case task.IsSelectedTasker(app.TaskerID):
		return constants.ApplicationSelected
	case task.SelectedTasker != nil, task.Status == constants.StatusCancelled:
		return constants.ApplicationRejected
	case app.ConfirmedByTasker:
		return constants.ApplicationConfirmed
	default:
		return constants.ApplicationPending
	}
}

func (r *ApplicationRegistry) Apply(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	proposedPayment int64,
	note string,
) (*model.Application, error) {
	app, err := r.createApplication(ctx, actor, taskID, proposedPayment, note)
	r.Metrics.ObserveAction(constants.ActionApply, err)
	return app, err
}

func (r *ApplicationRegistry) createApplication(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	proposedPayment int64,
	note string,
) (*model.Application, error) {
	task, err := r.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Check(task, constants.ActionApply, actor); err != nil {
		return nil, err
	}

	if task.IsTargeted {
		return nil, apperrors.ErrTargetedTaskNoApply.On(task.ID, constants.ActionApply, task.Status)
	}

	if proposedPayment <= 0 {
		return nil, apperrors.ErrPaymentOutOfRange.On(task.ID, constants.ActionApply, task.Status)
	}

	existing, err := r.apps.FindByTaskAndTasker(ctx, task.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateApplication.On(task.ID, constants.ActionApply, task.Status)
	}

	app := &model.Application{
		TaskID:          task.ID,
		TaskerID:        actor.ID,
		ProposedPayment: proposedPayment,
		Note:            strings.TrimSpace(note),
	}
	if err := r.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	r.Logger.Info("application created",
		zap.String("task_id", task.ID),
		zap.String("application_id", app.ID),
		zap.String("tasker_id", actor.ID),
	)
	r.publish(ctx, constants.EventApplicationAdded, task, actor, app)
	return app, nil
}

// ConfirmAvailability records the time and payment the tasker commits to.
// It may be repeated while the task is active; the latest values win.
func (r *ApplicationRegistry) ConfirmAvailability(
	ctx context.Context,
	actor model.Actor,
	applicationID string,
	confirmedTime time.Time,
	confirmedPayment int64,
) (*model.Application, error) {
	app, err := r.confirm(ctx, actor, applicationID, confirmedTime, confirmedPayment)
	r.Metrics.ObserveAction(constants.ActionConfirmAvailability, err)
	return app, err
}

func (r *ApplicationRegistry) confirm(
	ctx context.Context,
	actor model.Actor,
	applicationID string,
	confirmedTime time.Time,
	confirmedPayment int64,
) (*model.Application, error) {
	if applicationID == "" {
		return nil, apperrors.ErrApplicationIDRequired
	}

	app, err := r.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	task, err := r.Tasks.FindByID(ctx, app.TaskID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Check(task, constants.ActionConfirmAvailability, actor); err != nil {
		return nil, err
	}
	if app.TaskerID != actor.ID {
		return nil, apperrors.ErrNotApplicant.On(task.ID, constants.ActionConfirmAvailability, task.Status)
	}
	if err := checkTerms(task, confirmedTime, confirmedPayment); err != nil {
		return nil, err
	}

	setConfirmation(app, confirmedTime, confirmedPayment)
	if err := r.apps.Update(ctx, app); err != nil {
		return nil, err
	}

	r.Logger.Info("availability confirmed",
		zap.String("task_id", task.ID),
		zap.String("application_id", app.ID),
		zap.Time("confirmed_time", *app.ConfirmedTime),
		zap.Int64("confirmed_payment", *app.ConfirmedPayment),
	)
	r.publish(ctx, constants.EventApplicationUpdate, task, actor, app)
	return app, nil
}

// ConfirmTargeted is the direct-hire counterpart of Apply plus
// ConfirmAvailability: the targeted tasker confirms in one step and the
// confirmation is stored as an application so Select treats both paths alike.
func (r *ApplicationRegistry) ConfirmTargeted(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	confirmedTime time.Time,
	confirmedPayment int64,
) (*model.Application, error) {
	app, err := r.confirmTargeted(ctx, actor, taskID, confirmedTime, confirmedPayment)
	r.Metrics.ObserveAction(constants.ActionConfirmAvailability, err)
	return app, err
}

func (r *ApplicationRegistry) confirmTargeted(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	confirmedTime time.Time,
	confirmedPayment int64,
) (*model.Application, error) {
	task, err := r.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Check(task, constants.ActionConfirmAvailability, actor); err != nil {
		return nil, err
	}
	if !task.IsTargeted {
		return nil, apperrors.ErrNotTargetedTask.On(task.ID, constants.ActionConfirmAvailability, task.Status)
	}
	if !task.IsTargetedTasker(actor.ID) {
		return nil, apperrors.ErrNotTargetedTasker.On(task.ID, constants.ActionConfirmAvailability, task.Status)
	}
	if err := checkTerms(task, confirmedTime, confirmedPayment); err != nil {
		return nil, err
	}

	app, err := r.apps.FindByTaskAndTasker(ctx, task.ID, actor.ID)
	if err != nil {
		return nil, err
	}

	if app == nil {
		app = &model.Application{
			TaskID:          task.ID,
			TaskerID:        actor.ID,
			ProposedPayment: confirmedPayment,
			Targeted:        true,
		}
		setConfirmation(app, confirmedTime, confirmedPayment)
		err = r.apps.Create(ctx, app)
	} else {
		setConfirmation(app, confirmedTime, confirmedPayment)
		err = r.apps.Update(ctx, app)
	}
	if err != nil {
		return nil, err
	}

	r.Logger.Info("targeted task confirmed",
		zap.String("task_id", task.ID),
		zap.String("tasker_id", actor.ID),
	)
	r.publish(ctx, constants.EventApplicationUpdate, task, actor, app)
	return app, nil
}

// Select picks a confirmed application and schedules the task with its
// terms. It is the only path from active to scheduled.
func (r *ApplicationRegistry) Select(
	ctx context.Context,
	actor model.Actor,
	taskID string,
	applicationID string,
) (*model.Task, error) {
	return r.apply(ctx, actor, taskID, constants.ActionSelectTasker, func(task *model.Task) error {
		if applicationID == "" {
			return apperrors.ErrApplicationIDRequired
		}

		app, err := r.apps.FindByID(ctx, applicationID)
		if err != nil {
			return err
		}

		if app.TaskID != task.ID {
			return apperrors.ErrApplicationWrongTask.On(task.ID, constants.ActionSelectTasker, task.Status)
		}
		if task.IsTargeted && !task.IsTargetedTasker(app.TaskerID) {
			return apperrors.ErrNotTargetedTasker.On(task.ID, constants.ActionSelectTasker, task.Status)
		}
		if !app.ConfirmedByTasker || app.ConfirmedTime == nil || app.ConfirmedPayment == nil {
			return apperrors.ErrApplicationNotConfirmed.On(task.ID, constants.ActionSelectTasker, task.Status)
		}
		// Bounds may have been edited since the tasker confirmed.
		if err := checkTerms(task, *app.ConfirmedTime, *app.ConfirmedPayment); err != nil {
			return err
		}

		tasker := app.TaskerID
		agreedTime := *app.ConfirmedTime
		agreedPayment := *app.ConfirmedPayment
		task.SelectedTasker = &tasker
		task.AgreedTime = &agreedTime
		task.AgreedPayment = &agreedPayment
		task.ScheduleCancelReason = ""
		return nil
	})
}

// Withdraw removes the tasker's own application while the task is still
// open and the application has not been selected.
func (r *ApplicationRegistry) Withdraw(ctx context.Context, actor model.Actor, applicationID string) error {
	err := r.withdraw(ctx, actor, applicationID)
	r.Metrics.ObserveAction(constants.ActionWithdraw, err)
	return err
}

func (r *ApplicationRegistry) withdraw(ctx context.Context, actor model.Actor, applicationID string) error {
	app, err := r.apps.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}

	task, err := r.Tasks.FindByID(ctx, app.TaskID)
	if err != nil {
		return err
	}

	if err := lifecycle.Check(task, constants.ActionWithdraw, actor); err != nil {
		return err
	}
	if app.TaskerID != actor.ID {
		return apperrors.ErrNotApplicant.On(task.ID, constants.ActionWithdraw, task.Status)
	}
	if task.IsSelectedTasker(app.TaskerID) {
		return apperrors.ErrApplicationSelected.On(task.ID, constants.ActionWithdraw, task.Status)
	}

	if err := r.apps.Delete(ctx, app); err != nil {
		return err
	}

	r.publish(ctx, constants.EventApplicationUpdate, task, actor, app)
	return nil
}

// List returns the task's applications with derived statuses. The owner
// and admins see every application, a tasker only their own.
func (r *ApplicationRegistry) List(ctx context.Context, actor model.Actor, taskID string) ([]model.ApplicationView, error) {
	task, err := r.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	apps, err := r.apps.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	var visible []model.Application
	switch {
	case actor.Is(constants.RoleAdmin), actor.Is(constants.RoleCustomer) && task.IsOwner(actor.ID):
		visible = apps
	case actor.Is(constants.RoleTasker):
		for _, app := range apps {
			if app.TaskerID == actor.ID {
				visible = append(visible, app)
			}
		}
	default:
		return nil, apperrors.ErrNotTaskOwner.On(task.ID, "", task.Status)
	}

	return views(task, visible), nil
}

// ListForTasker returns every application the tasker has made.
func (r *ApplicationRegistry) ListForTasker(ctx context.Context, actor model.Actor) ([]model.ApplicationView, error) {
	if !actor.Is(constants.RoleTasker) {
		return nil, apperrors.ErrRoleNotPermitted
	}

	apps, err := r.apps.ListByTasker(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]model.ApplicationView, 0, len(apps))
	for _, app := range apps {
		task, err := r.Tasks.FindByID(ctx, app.TaskID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ApplicationView{Application: app, Status: DeriveStatus(task, &app)})
	}
	return out, nil
}

func (r *ApplicationRegistry) publish(
	ctx context.Context,
	eventType constants.EventType,
	task *model.Task,
	actor model.Actor,
	app *model.Application,
) {
	event := notifications.NewTaskEvent(eventType, task, actor)
	event.ApplicationID = app.ID
	r.Events.Dispatch(ctx, event)
}

func views(task *model.Task, apps []model.Application) []model.ApplicationView {
	out := make([]model.ApplicationView, 0, len(apps))
	for i := range apps {
		out = append(out, model.ApplicationView{Application: apps[i], Status: DeriveStatus(task, &apps[i])})
	}
	return out
}

func checkTerms(task *model.Task, at time.Time, payment int64) error {
	if !task.TimeInRange(at) {
		return apperrors.ErrTimeOutOfRange.On(task.ID, constants.ActionConfirmAvailability, task.Status)
	}
	if !task.PaymentInRange(payment) {
		return apperrors.ErrPaymentOutOfRange.On(task.ID, constants.ActionConfirmAvailability, task.Status)
	}
	return nil
}

func setConfirmation(app *model.Application, at time.Time, payment int64) {
	confirmedTime := at.UTC()
	confirmedPayment := payment
	app.ConfirmedByTasker = true
	app.ConfirmedTime = &confirmedTime
	app.ConfirmedPayment = &confirmedPayment
}
