package response

import (
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingView struct {
	ID                    uuid.UUID      `json:"id"`
	Status                booking.Status `json:"status"`
	QuotationAmount       *float64       `json:"quotation_amount,omitempty"`
	QuotedDurationMinutes *int           `json:"quoted_duration_minutes,omitempty"`
	RequestedDatetime     *time.Time     `json:"requested_datetime,omitempty"`
	IsBookNow             bool           `json:"is_book_now"`
	LimboTimeoutAt        *time.Time     `json:"limbo_timeout_at,omitempty"`
	PaidAt                *time.Time     `json:"paid_at,omitempty"`
	TimeoutWarning        bool           `json:"timeout_warning"`
	JobConflict           bool           `json:"job_conflict"`
}

func NewBookingViews(records []booking.Booking) []BookingView {
	views := make([]BookingView, 0, len(records))
	for _, rec := range records {
		var v BookingView
		_ = copier.Copy(&v, &rec)
		v.TimeoutWarning = rec.Flags.TimeoutWarning
		v.JobConflict = rec.Flags.JobConflict
		views = append(views, v)
	}
	return views
}

type BookingsResponse struct {
	Bookings []BookingView `json:"bookings"`
	Unread   int           `json:"unread_notifications"`
}

type CacheKeysResponse struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Channel string `json:"channel"`
}
