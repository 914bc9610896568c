package services

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/metrics"
	model "task-marketplace.com/task-marketplace/internal/models"
)

type ApprovalStatusProvider interface {
	GetApprovalStatus(ctx context.Context, userID string) (*model.TaskerApproval, error)
}

type ApprovalStore interface {
	ApprovalStatusProvider
	SetApprovalStatus(ctx context.Context, approval *model.TaskerApproval) error
}

type Decision struct {
	Allowed  bool                     `json:"allowed"`
	Redirect string                   `json:"redirect,omitempty"`
	Status   constants.ApprovalStatus `json:"status,omitempty"`
}

// Evaluate is the gate's decision as a pure function. Non-taskers always
// pass, taskers always reach the waiting page, and everything else needs an
// approved status that was fetched without error.
func Evaluate(role constants.Role, route, waitingRoute string, status constants.ApprovalStatus, fetchErr error) Decision {
	if role != constants.RoleTasker {
		return Decision{Allowed: true}
	}
	if sameRoute(route, waitingRoute) {
		return Decision{Allowed: true, Status: status}
	}
	if fetchErr == nil && status == constants.ApprovalApproved {
		return Decision{Allowed: true, Status: status}
	}
	return Decision{Allowed: false, Redirect: waitingRoute, Status: status}
}

// ApprovalGate fetches a tasker's approval on every check. There is no
// cache: approval can change between two navigations in one session.
type ApprovalGate struct {
	store        ApprovalStore
	waitingRoute string
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewApprovalGate(store ApprovalStore, waitingRoute string, m *metrics.Metrics, logger *zap.Logger) *ApprovalGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalGate{
		store:        store,
		waitingRoute: waitingRoute,
		metrics:      m,
		logger:       logger,
	}
}

func (g *ApprovalGate) WaitingRoute() string {
	return g.waitingRoute
}

func (g *ApprovalGate) Check(ctx context.Context, actor model.Actor, route string) Decision {
	if !actor.Is(constants.RoleTasker) || sameRoute(route, g.waitingRoute) {
		return Evaluate(actor.Role, route, g.waitingRoute, "", nil)
	}

	var status constants.ApprovalStatus
	approval, err := g.store.GetApprovalStatus(ctx, actor.ID)
	if err != nil {
		err = apperrors.Upstream(err)
		g.logger.Warn("approval status unavailable, denying",
			zap.String("user_id", actor.ID),
			zap.String("route", route),
			zap.Error(err),
		)
	} else {
		status = approval.Status
	}

	decision := Evaluate(actor.Role, route, g.waitingRoute, status, err)
	g.metrics.ObserveGate(decision.Allowed)
	return decision
}

// Require turns a denied decision into a NotApproved error.
func (g *ApprovalGate) Require(ctx context.Context, actor model.Actor, route string) error {
	if d := g.Check(ctx, actor, route); !d.Allowed {
		return apperrors.ErrNotApproved
	}
	return nil
}

// Status is what the waiting page shows. Unlike Check it surfaces fetch
// errors to the caller.
func (g *ApprovalGate) Status(ctx context.Context, actor model.Actor) (*model.TaskerApproval, error) {
	if !actor.Is(constants.RoleTasker) {
		return nil, apperrors.ErrRoleNotPermitted
	}
	approval, err := g.store.GetApprovalStatus(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.Upstream(err)
	}
	return approval, nil
}

// SetStatus records an admin review of a tasker.
func (g *ApprovalGate) SetStatus(
	ctx context.Context,
	actor model.Actor,
	userID string,
	status constants.ApprovalStatus,
	reason string,
) (*model.TaskerApproval, error) {
	if !actor.Is(constants.RoleAdmin) {
		return nil, apperrors.ErrRoleNotPermitted
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidApprovalStatus
	}

	approval := &model.TaskerApproval{UserID: userID, Status: status}
	if status == constants.ApprovalRejected {
		approval.RejectionReason = strings.TrimSpace(reason)
	}

	if err := g.store.SetApprovalStatus(ctx, approval); err != nil {
		return nil, apperrors.Upstream(err)
	}

	g.logger.Info("tasker approval updated",
		zap.String("user_id", userID),
		zap.String("status", string(status)),
		zap.String("admin_id", actor.ID),
	)
	return approval, nil
}

func sameRoute(route, target string) bool {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" || target == "" {
		return false
	}
	return path.Clean(route) == path.Clean(target)
}
