package models

import "strings"

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	UserName    string `json:"userName" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// LoginRequest represents the request body for user login.
//
// Identifier may be an email address or a phone number. Older clients send the
// phone number in Email, so Email is read when Identifier is empty.
type LoginRequest struct {
	Identifier     string         `json:"identifier"`
	IdentifierType IdentifierKind `json:"identifierType"`
	Email          string         `json:"email"`
	Password       string         `json:"password" binding:"required"`
}

// IdentifierKind names the user field a login identifier is matched against.
type IdentifierKind string

const (
	IdentifierEmail IdentifierKind = "email"
	IdentifierPhone IdentifierKind = "phone"
)

// Identifier is an explicit login lookup key.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// LookupIdentifier resolves which field the login should match. An explicit
// IdentifierType wins; otherwise a value containing "@" is an email and
// anything else is a phone number.
func (r *LoginRequest) LookupIdentifier() Identifier {
	value := strings.TrimSpace(r.Identifier)
	if value == "" {
		value = strings.TrimSpace(r.Email)
	}

	kind := r.IdentifierType
	if kind != IdentifierEmail && kind != IdentifierPhone {
		kind = IdentifierPhone
		if strings.Contains(value, "@") {
			kind = IdentifierEmail
		}
	}

	return Identifier{Kind: kind, Value: value}
}
