package constants

// ApplicationStatus is computed from the owning task on every read and is
// never persisted.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationConfirmed ApplicationStatus = "confirmed"
	ApplicationSelected  ApplicationStatus = "selected"
	ApplicationRejected  ApplicationStatus = "rejected"
)
