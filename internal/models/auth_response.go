package models

import (
	"time"

	"attendance-be/internal/entities"
)

// PublicUser is the only shape in which a user leaves the service.
type PublicUser struct {
	ID          string        `json:"id"` // UUID
	UserName    string        `json:"userName"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
	Role        entities.Role `json:"role"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// NewPublicUser projects a stored user, dropping the password hash.
func NewPublicUser(u *entities.User) PublicUser {
	return PublicUser{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// AuthResponse is returned by register and login: the message, the user fields
// flattened alongside it, and the access token.
type AuthResponse struct {
	Message string `json:"message"`
	PublicUser
	Token string `json:"token"` // JWT token
}
