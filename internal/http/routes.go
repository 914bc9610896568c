package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "task-marketplace.com/task-marketplace/internal/http/middlewares"
	"task-marketplace.com/task-marketplace/internal/services"
)

type Options struct {
	RateLimitPerMinute int
	Tokens             middleware.TokenParser
	Gate               *services.ApprovalGate
	Metrics            http.Handler
}

func Register(e *echo.Echo, h *Handler, opts Options) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics))
	}

	api := e.Group("",
		middleware.Auth(opts.Tokens),
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
	)

	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.PATCH("/tasks/:id", h.EditTask)
	api.POST("/tasks/:id/cancel", h.CancelTask)
	api.POST("/tasks/:id/cancel-schedule", h.CancelSchedule)
	api.GET("/tasks/:id/applications", h.ListApplications)
	api.POST("/tasks/:id/select", h.SelectTasker)
	api.POST("/tasks/:id/customer-complete", h.CustomerComplete)

	api.GET("/gate/check", h.GateCheck)
	api.PUT("/admin/taskers/:id/approval", h.SetApproval)

	api.GET(opts.Gate.WaitingRoute(), h.WaitingApproval)

	tasker := api.Group("/tasker", middleware.ApprovalGate(opts.Gate))
	tasker.GET("/applications", h.ListMyApplications)
	tasker.POST("/tasks/:id/applications", h.Apply)
	tasker.POST("/applications/:id/confirm", h.ConfirmAvailability)
	tasker.DELETE("/applications/:id", h.Withdraw)
	tasker.POST("/tasks/:id/confirm-targeted", h.ConfirmTargeted)
	tasker.POST("/tasks/:id/complete", h.TaskerComplete)
}
