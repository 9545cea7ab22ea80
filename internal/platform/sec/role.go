// Copyright (c) 2026 Plume. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// It is a closed two-variant type: every role transition the system performs
// is monotonic (user to admin, never back).
type Role string

const (
	// Unrestricted moderation access
	RoleAdmin Role = "admin"

	// Default role for standard registered users
	RoleUser Role = "user"
)

// IsAdmin reports whether the role carries administrative privilege.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the value is one of the two known variants.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}
