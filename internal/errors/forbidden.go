package errors

var (
	ErrNotTaskOwner        = newException(KindForbidden, "only the task owner may do this")
	ErrNotSelectedTasker   = newException(KindForbidden, "only the selected tasker may do this")
	ErrNotOwnerOrSelected  = newException(KindForbidden, "only the task owner or the selected tasker may do this")
	ErrNotApplicant        = newException(KindForbidden, "only the applying tasker may do this")
	ErrNotTargetedTasker   = newException(KindForbidden, "only the targeted tasker may do this")
	ErrRoleNotPermitted    = newException(KindForbidden, "role is not permitted to do this")
	ErrUnauthenticated     = newException(KindUnauthenticated, "authentication required")
	ErrSystemOnlyAction    = newException(KindForbidden, "only the system may do this")
	ErrNotApproved         = newException(KindNotApproved, "tasker account is not approved")
	ErrUpstreamUnavailable = newException(KindUpstreamUnavailable, "upstream service unavailable")
)
