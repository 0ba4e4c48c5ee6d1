package models

import "attendance-be/internal/entities"

// CheckOutResponse wraps the closed entry.
type CheckOutResponse struct {
	Message string          `json:"message"`
	Data    *entities.Entry `json:"data"`
}

// EntryListResponse is one page of entries plus its pagination metadata.
type EntryListResponse struct {
	Data       []*entities.Entry `json:"data"`
	Pagination Pagination        `json:"pagination"`
}
