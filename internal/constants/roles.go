package constants

type Role string

const (
	RoleCustomer Role = "customer"
	RoleTasker   Role = "tasker"
	RoleAdmin    Role = "admin"

	// RoleSystem is never accepted from a token; it is used for automatic
	// transitions only.
	RoleSystem Role = "system"
)

// Valid reports whether r may be asserted by an authenticated caller.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTasker, RoleAdmin:
		return true
	}
	return false
}
