package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

const actorKey = "actor"

type TokenParser interface {
	Parse(token string) (model.Actor, error)
}

// Auth verifies the bearer token on every request and stores the caller
// in the echo context. Nothing about the caller outlives the request.
func Auth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return apperrors.ErrUnauthenticated
			}

			actor, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				return apperrors.ErrUnauthenticated.Wrap(err)
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// ActorFrom returns the authenticated caller, or the zero Actor when Auth
// did not run.
func ActorFrom(c echo.Context) model.Actor {
	actor, _ := c.Get(actorKey).(model.Actor)
	return actor
}
