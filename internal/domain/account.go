package domain

import "time"

// Role is the authorization level attached to an account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleUser:
		return Role(s), true
	}
	return "", false
}

// CanViewAll reports whether the role may read shipments owned by other accounts.
func (r Role) CanViewAll() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanUpdateStatus reports whether the role may change shipment statuses.
func (r Role) CanUpdateStatus() bool {
	return r == RoleAdmin || r == RoleManager
}

// Account is the domain model for a login identity. Accounts are created at
// seed time or via registration and are never deleted; the role is fixed at
// creation.
type Account struct {
	ID         int64
	Username   string
	SecretHash string
	Role       Role
	CreatedAt  time.Time
}
