package errs

import "errors"

// Error taxonomy for the sync layer. Mutation paths Mark their failures with
// one of these so callers can branch without string matching.
var (
	// Transport errors
	ErrNetwork            = errors.New("network request failed")
	ErrValidation         = errors.New("request validation failed")
	ErrAuthExpired        = errors.New("authentication expired")
	ErrAccountDeactivated = errors.New("account deactivated")

	// Booking errors
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrUnexpectedEnvelope  = errors.New("unexpected response envelope")
	ErrChannelDisconnected = errors.New("realtime channel disconnected")

	// Session errors
	ErrNoToken = errors.New("no auth token available")
)
