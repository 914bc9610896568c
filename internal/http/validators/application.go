package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-marketplace.com/task-marketplace/internal/data_models"
)

func ValidateApplyRequest(r *dto.ApplyRequest) error {
	if r.ProposedPayment <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "proposed_payment must be positive")
	}
	return nil
}

func ValidateConfirmAvailabilityRequest(r *dto.ConfirmAvailabilityRequest) error {
	if r.Time.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "time is required")
	}
	if r.Payment <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "payment must be positive")
	}
	return nil
}

func ValidateSelectTaskerRequest(r *dto.SelectTaskerRequest) error {
	if r.ApplicationID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "application_id is required")
	}
	return nil
}
