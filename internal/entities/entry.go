package entities

import "time"

// Entry is one attendance record: a check-in, optionally closed by a check-out.
type Entry struct {
	ID               string    `json:"id"`     // UUID
	UserID           string    `json:"userId"` // owner, UUID
	CheckInTime      string    `json:"checkInTime"`
	CheckInLocation  string    `json:"checkInLocation"`
	CheckOutTime     *string   `json:"checkOutTime,omitempty"`
	CheckoutLocation *string   `json:"checkoutLocation,omitempty"`
	TotalHours       *string   `json:"totalHurs,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// User is only populated by listing queries that join the owner.
	User *EntryOwner `json:"user,omitempty"`
}

// EntryOwner is the public part of the owning user joined into listed entries.
type EntryOwner struct {
	ID          string    `json:"id"`
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsOpen reports whether the entry still lacks a check-out time.
func (e *Entry) IsOpen() bool {
	return e.CheckOutTime == nil
}

// CheckOut holds the fields written when an entry is closed.
type CheckOut struct {
	CheckOutTime     string
	CheckoutLocation string
	TotalHours       *string
}
