package models

import "attendance-be/internal/entities"

// Caller is the identity resolved from a verified access token.
type Caller struct {
	UserID   string
	Username string
	Role     entities.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == entities.RoleAdmin
}
