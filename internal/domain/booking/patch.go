package booking

import "time"

// Patch is a shallow field-set decoded from a REST response body or a
// realtime payload. Nil pointers mean "field absent"; Apply overwrites only
// present fields, so applying the same patch twice is idempotent and two
// patches for the same booking resolve last-write-wins.
type Patch struct {
	Status                *Status        `json:"status"`
	QuotationAmount       *float64       `json:"quotation_amount"`
	QuotedDurationMinutes *int           `json:"quoted_duration_minutes"`
	RequestedDatetime     *time.Time     `json:"requested_datetime"`
	IsBookNow             *bool          `json:"is_book_now"`
	LimboTimeoutAt        *time.Time     `json:"limbo_timeout_at"`
	PaidAt                *time.Time     `json:"paid_at"`
	Service               map[string]any `json:"service"`
	Customer              map[string]any `json:"customer"`
	Location              map[string]any `json:"location"`
}

func (p Patch) Apply(b *Booking) {
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.QuotationAmount != nil {
		b.QuotationAmount = p.QuotationAmount
	}
	if p.QuotedDurationMinutes != nil {
		b.QuotedDurationMinutes = p.QuotedDurationMinutes
	}
	if p.RequestedDatetime != nil {
		b.RequestedDatetime = p.RequestedDatetime
	}
	if p.IsBookNow != nil {
		b.IsBookNow = *p.IsBookNow
	}
	if p.LimboTimeoutAt != nil {
		b.LimboTimeoutAt = p.LimboTimeoutAt
	}
	if p.PaidAt != nil {
		b.PaidAt = p.PaidAt
	}
	if p.Service != nil {
		b.Service = p.Service
	}
	if p.Customer != nil {
		b.Customer = p.Customer
	}
	if p.Location != nil {
		b.Location = p.Location
	}
}

func StatusPatch(s Status) Patch {
	return Patch{Status: &s}
}
