package domain

import "time"

// Role enumerates access levels.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleInspector  Role = "inspector"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleInspector:
		return true
	}
	return false
}

// IsAdmin reports whether r carries review privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is an operator of the system.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	HospitalID   *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
