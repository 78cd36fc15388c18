package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking mirrors one server booking record. Fields map 1:1 onto the REST
// payload; Flags are client-side display state set from realtime warnings
// and never sent back to the server.
type Booking struct {
	ID                    uuid.UUID      `json:"id"`
	Status                Status         `json:"status"`
	QuotationAmount       *float64       `json:"quotation_amount"`
	QuotedDurationMinutes *int           `json:"quoted_duration_minutes"`
	RequestedDatetime     *time.Time     `json:"requested_datetime"`
	IsBookNow             bool           `json:"is_book_now"`
	LimboTimeoutAt        *time.Time     `json:"limbo_timeout_at"`
	PaidAt                *time.Time     `json:"paid_at"`
	Service               map[string]any `json:"service"`
	Customer              map[string]any `json:"customer"`
	Location              map[string]any `json:"location"`

	Flags Flags `json:"-"`
}

// Flags carry UI-only state: a booking whose counterparty deadline passed
// shows as timed out without its underlying status ever moving locally.
type Flags struct {
	TimeoutWarning   bool
	TimeoutRemaining time.Duration
	JobConflict      bool
	TimedOut         bool
}
