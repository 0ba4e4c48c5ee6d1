package models

// CheckInRequest represents the request body for POST /checkIn
type CheckInRequest struct {
	CheckInTime     string `json:"checkInTime"`
	CheckInLocation string `json:"checkInLocation"`
}

// CheckOutRequest represents the request body for POST /checkOut
type CheckOutRequest struct {
	CheckOutTime     string  `json:"checkOutTime"`
	CheckoutLocation string  `json:"checkoutLocation"`
	TotalHours       *string `json:"totalHurs"`
}
