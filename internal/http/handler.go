package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-marketplace.com/task-marketplace/internal/data_models"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
	"task-marketplace.com/task-marketplace/internal/http/validators"
	model "task-marketplace.com/task-marketplace/internal/models"
	"task-marketplace.com/task-marketplace/internal/services"
)

type Handler struct {
	taskService *services.TaskService
	registry    *services.ApplicationRegistry
	completion  *services.CompletionProtocol
	gate        *services.ApprovalGate
}

func NewHandler(
	taskService *services.TaskService,
	registry *services.ApplicationRegistry,
	completion *services.CompletionProtocol,
	gate *services.ApprovalGate,
) *Handler {
	return &Handler{
		taskService: taskService,
		registry:    registry,
		completion:  completion,
		gate:        gate,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	actor := middleware.ActorFrom(c)
	task, err := h.taskService.CreateTask(c.Request().Context(), actor, services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Area:           req.Area,
		MinPayment:     req.MinPayment,
		MaxPayment:     req.MaxPayment,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Tags:           req.Tags,
		TargetedTasker: req.TargetedTasker,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, h.taskResponse(task, actor))
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.taskResponse(task, middleware.ActorFrom(c)))
}

func (h *Handler) ListTasks(c echo.Context) error {
	var q dto.ListTasksQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return apperrors.ErrInvalidPayload
	}
	if err := validators.ValidateListTasksQuery(&q); err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), model.TaskFilter{
		Status:     q.Status,
		CustomerID: q.CustomerID,
		TaskerID:   q.TaskerID,
		Category:   q.Category,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) EditTask(c echo.Context) error {
	var req dto.EditTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}
	if err := validators.ValidateEditTaskRequest(&req); err != nil {
		return err
	}

	actor := middleware.ActorFrom(c)
	task, err := h.taskService.EditTask(c.Request().Context(), actor, c.Param("id"), services.EditTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Area:        req.Area,
		MinPayment:  req.MinPayment,
		MaxPayment:  req.MaxPayment,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.taskResponse(task, actor))
}

func (h *Handler) CancelTask(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	task, err := h.taskService.CancelTask(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.taskResponse(task, actor))
}

func (h *Handler) CancelSchedule(c echo.Context) error {
	var req dto.CancelScheduleRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}

	actor := middleware.ActorFrom(c)
	task, err := h.taskService.CancelSchedule(c.Request().Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.taskResponse(task, actor))
}

func (h *Handler) ListApplications(c echo.Context) error {
	apps, err := h.registry.List(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}

func (h *Handler) SelectTasker(c echo.Context) error {
	var req dto.SelectTaskerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}
	if err := validators.ValidateSelectTaskerRequest(&req); err != nil {
		return err
	}

	actor := middleware.ActorFrom(c)
	task, err := h.registry.Select(c.Request().Context(), actor, c.Param("id"), req.ApplicationID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.taskResponse(task, actor))
}

func (h *Handler) CustomerComplete(c echo.Context) error {
	var req dto.CustomerCompleteRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}

	res, err := h.completion.CustomerComplete(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"),
		services.CustomerCompletion{Rating: req.Rating, Review: req.Review})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Apply(c echo.Context) error {
	var req dto.ApplyRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}
	if err := validators.ValidateApplyRequest(&req); err != nil {
		return err
	}

	app, err := h.registry.Apply(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), req.ProposedPayment, req.Note)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, app)
}

func (h *Handler) ConfirmAvailability(c echo.Context) error {
	var req dto.ConfirmAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}
	if err := validators.ValidateConfirmAvailabilityRequest(&req); err != nil {
		return err
	}

	app, err := h.registry.ConfirmAvailability(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), req.Time, req.Payment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}

func (h *Handler) ConfirmTargeted(c echo.Context) error {
	var req dto.ConfirmAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}
	if err := validators.ValidateConfirmAvailabilityRequest(&req); err != nil {
		return err
	}

	app, err := h.registry.ConfirmTargeted(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), req.Time, req.Payment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, app)
}

func (h *Handler) Withdraw(c echo.Context) error {
	if err := h.registry.Withdraw(c.Request().Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListMyApplications(c echo.Context) error {
	apps, err := h.registry.ListForTasker(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}

func (h *Handler) TaskerComplete(c echo.Context) error {
	var req dto.TaskerCompleteRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}

	res, err := h.completion.TaskerComplete(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"),
		services.TaskerCompletion{
			Notes:             req.Notes,
			Photos:            req.Photos,
			Feedback:          req.Feedback,
			RatingForCustomer: req.RatingForCustomer,
		})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

func (h *Handler) WaitingApproval(c echo.Context) error {
	approval, err := h.gate.Status(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, approval)
}

func (h *Handler) GateCheck(c echo.Context) error {
	route := c.QueryParam("route")
	if route == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "route is required")
	}

	return c.JSON(http.StatusOK, h.gate.Check(c.Request().Context(), middleware.ActorFrom(c), route))
}

func (h *Handler) SetApproval(c echo.Context) error {
	var req dto.SetApprovalRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}

	approval, err := h.gate.SetStatus(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, approval)
}

func (h *Handler) taskResponse(task *model.Task, actor model.Actor) dto.TaskResponse {
	return dto.TaskResponse{Task: task, AllowedActions: h.taskService.AllowedActions(task, actor)}
}
