//go:build unit

package builder

import (
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID                uuid.UUID
	Status            booking.Status
	QuotationAmount   *float64
	RequestedDatetime *time.Time
	IsBookNow         bool
	LimboTimeoutAt    *time.Time
}

func NewBookingBuilder() *BookingBuilder {
	requested := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:                uuid.New(),
		Status:            booking.StatusWaitingApproval,
		RequestedDatetime: &requested,
	}
}

func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithQuotation(amount float64) *BookingBuilder {
	b.QuotationAmount = &amount
	return b
}

func (b *BookingBuilder) WithRequestedAt(t time.Time) *BookingBuilder {
	b.RequestedDatetime = &t
	return b
}

func (b *BookingBuilder) WithLimboTimeout(t time.Time) *BookingBuilder {
	b.LimboTimeoutAt = &t
	return b
}

func (b *BookingBuilder) AsBookNow() *BookingBuilder {
	b.IsBookNow = true
	return b
}

func (b *BookingBuilder) Build() booking.Booking {
	return booking.Booking{
		ID:                b.ID,
		Status:            b.Status,
		QuotationAmount:   b.QuotationAmount,
		RequestedDatetime: b.RequestedDatetime,
		IsBookNow:         b.IsBookNow,
		LimboTimeoutAt:    b.LimboTimeoutAt,
		Service:           map[string]any{"name": "deep-clean"},
		Customer:          map[string]any{"name": "tester"},
	}
}
