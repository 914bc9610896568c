package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
)

type errorResponse struct {
	Kind    apperrors.Kind       `json:"kind,omitempty"`
	Message string               `json:"message"`
	TaskID  string               `json:"task_id,omitempty"`
	Action  constants.Action     `json:"action,omitempty"`
	Status  constants.TaskStatus `json:"status,omitempty"`
}

// ErrorHandler renders domain errors with their kind and task context so
// that the client can tell a stale view from a permission problem.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := render(err)
		if code >= http.StatusInternalServerError {
			logger.Error("request error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Warn("failed to write error response", zap.Error(err))
		}
	}
}

func render(err error) (int, errorResponse) {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode, errorResponse{
			Kind:    appErr.Kind,
			Message: appErr.Message,
			TaskID:  appErr.TaskID,
			Action:  appErr.Action,
			Status:  appErr.Status,
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, errorResponse{Message: msg}
	}

	return http.StatusInternalServerError, errorResponse{Message: "internal server error"}
}
