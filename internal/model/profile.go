package model

import "time"

// Role is the access level of a profile.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleTU          Role = "TU"
	RoleKoordinator Role = "Koordinator"
	RoleStaff       Role = "Staff"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleTU, RoleKoordinator, RoleStaff}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Profile is a user of the system.
type Profile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName prefers the full name and falls back to the username.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Name
}
