package realtime

import "encoding/json"

// Event names pushed by the marketplace backend. Payload shapes are decoded
// by the subscriber; the channel treats payloads as opaque.
const (
	EventNewAssignment            = "new-assignment"
	EventAssignmentTimeoutWarning = "assignment-timeout-warning"
	EventQuoteTimeoutWarning      = "quote-timeout-warning"
	EventQuoteAccepted            = "quote-accepted"
	EventPaymentConfirmed         = "payment-confirmed"
	EventQuoteDeclined            = "quote-declined"
	EventBookingStatusChanged     = "booking-status-changed"
	EventJobConflictWarning       = "job-conflict-warning"
	EventNextJobCancelled         = "next-job-cancelled"
	EventJobStartApproved         = "job-start-approved"
	EventJobCompleteApproved      = "job-complete-approved"
	EventNotification             = "notification"
)

// Event is the wire envelope. Events are transient: applied once, never
// retained.
type Event struct {
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}
