package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-marketplace.com/task-marketplace/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.MinPayment <= 0 || r.MaxPayment <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "min_payment and max_payment must be positive")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}
	return nil
}

func ValidateEditTaskRequest(r *dto.EditTaskRequest) error {
	if r.Title == nil && r.Description == nil && r.Category == nil && r.Area == nil &&
		r.MinPayment == nil && r.MaxPayment == nil && r.StartDate == nil && r.EndDate == nil && r.Tags == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}
	return nil
}

func ValidateListTasksQuery(q *dto.ListTasksQuery) error {
	if q.Status != "" && !q.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	if q.Offset < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "offset must not be negative")
	}
	return nil
}
