package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/services"
)

// ApprovalGate asks the gate on every request it guards. A denied tasker
// gets 403 with the route to redirect to.
func ApprovalGate(gate *services.ApprovalGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := gate.Check(c.Request().Context(), ActorFrom(c), c.Request().URL.Path)
			if decision.Allowed {
				return next(c)
			}

			return c.JSON(http.StatusForbidden, echo.Map{
				"kind":     apperrors.KindNotApproved,
				"message":  apperrors.ErrNotApproved.Message,
				"redirect": decision.Redirect,
				"status":   decision.Status,
			})
		}
	}
}
