package rest

import (
	"encoding/json"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/booking"
)

// Envelope is the marketplace API's uniform response shape.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Pagination *Pagination       `json:"pagination,omitempty"`
	Message    string            `json:"message,omitempty"`
	Code       string            `json:"code,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// BookingList is the decoded GET /bookings payload.
type BookingList struct {
	Bookings   []booking.Booking
	Pagination *Pagination
}

// QuoteRequest carries the provider's quotation for a pending booking.
type QuoteRequest struct {
	Amount          float64 `json:"quotation_amount"`
	DurationMinutes int     `json:"quoted_duration_minutes"`
}

// Deactivation code the backend attaches to a 403 when the provider
// account has been disabled.
const codeAccountDeactivated = "ACCOUNT_DEACTIVATED"
