package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/booking"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/errs"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/session"

	"github.com/google/uuid"
)

// API is the surface the sync layer consumes; *Client implements it and
// tests substitute a gomock mock.
type API interface {
	FetchBookings(ctx context.Context) (*BookingList, error)
	FetchBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	AcceptAssignment(ctx context.Context, id uuid.UUID) (booking.Patch, error)
	RejectAssignment(ctx context.Context, id uuid.UUID) (booking.Patch, error)
	SendQuote(ctx context.Context, id uuid.UUID, quote QuoteRequest) (booking.Patch, error)
	ConfirmScope(ctx context.Context, id uuid.UUID) (booking.Patch, error)
	MarkOnTheWay(ctx context.Context, id uuid.UUID) (booking.Patch, error)
	RequestJobStart(ctx context.Context, id uuid.UUID) (booking.Patch, error)
	RequestJobComplete(ctx context.Context, id uuid.UUID) (booking.Patch, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (booking.Patch, error)
}

var _ API = (*Client)(nil)

// Client talks to the marketplace booking API. Every call maps transport
// and status failures onto the errs taxonomy; nothing here retries.
type Client struct {
	cfg     config.APIConfig
	http    *http.Client
	session *session.Session
}

func NewClient(cfg config.APIConfig, sess *session.Session) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		session: sess,
	}
}

func (c *Client) FetchBookings(ctx context.Context) (*BookingList, error) {
	env, err := c.do(ctx, http.MethodGet, "/bookings", nil)
	if err != nil {
		return nil, err
	}
	var items []booking.Booking
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode bookings"), errs.ErrUnexpectedEnvelope)
	}
	return &BookingList{Bookings: items, Pagination: env.Pagination}, nil
}

func (c *Client) FetchBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	env, err := c.do(ctx, http.MethodGet, "/bookings/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	var b booking.Booking
	if err := json.Unmarshal(env.Data, &b); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode booking"), errs.ErrUnexpectedEnvelope)
	}
	return &b, nil
}

func (c *Client) AcceptAssignment(ctx context.Context, id uuid.UUID) (booking.Patch, error) {
	return c.mutate(ctx, http.MethodPatch, id, "accept-assignment", nil)
}

func (c *Client) RejectAssignment(ctx context.Context, id uuid.UUID) (booking.Patch, error) {
	return c.mutate(ctx, http.MethodPatch, id, "reject-assignment", nil)
}

func (c *Client) SendQuote(ctx context.Context, id uuid.UUID, quote QuoteRequest) (booking.Patch, error) {
	return c.mutate(ctx, http.MethodPatch, id, "quote", quote)
}

func (c *Client) ConfirmScope(ctx context.Context, id uuid.UUID) (booking.Patch, error) {
	return c.mutate(ctx, http.MethodPost, id, "confirm-scope", nil)
}

func (c *Client) MarkOnTheWay(ctx context.Context, id uuid.UUID) (booking.Patch, error) {
	return c.mutate(ctx, http.MethodPatch, id, "on-the-way", nil)
}

func (c *Client) RequestJobStart(ctx context.Context, id uuid.UUID) (booking.Patch, error) {
	return c.mutate(ctx, http.MethodPatch, id, "start", nil)
}

func (c *Client) RequestJobComplete(ctx context.Context, id uuid.UUID) (booking.Patch, error) {
	return c.mutate(ctx, http.MethodPatch, id, "complete", nil)
}

func (c *Client) CancelBooking(ctx context.Context, id uuid.UUID) (booking.Patch, error) {
	return c.mutate(ctx, http.MethodPost, id, "cancel", nil)
}

func (c *Client) mutate(ctx context.Context, method string, id uuid.UUID, action string, body any) (booking.Patch, error) {
	env, err := c.do(ctx, method, fmt.Sprintf("/bookings/%s/%s", id, action), body)
	if err != nil {
		return booking.Patch{}, err
	}
	var p booking.Patch
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return booking.Patch{}, errs.Mark(errs.Wrap(err, "decode mutation response"), errs.ErrUnexpectedEnvelope)
		}
	}
	return p, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, errs.Wrap(err, "encode request body")
		}
		buf = bytes.NewBuffer(raw)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint(path), buf)
	if err != nil {
		return nil, errs.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.session.Token()
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, method+" "+path), errs.ErrNetwork)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode response envelope"), errs.ErrUnexpectedEnvelope)
	}

	if err := c.mapStatus(resp.StatusCode, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, errs.Mark(errs.Newf("server rejected %s %s: %s", method, path, env.Message), errs.ErrNetwork)
	}
	return &env, nil
}

// mapStatus projects HTTP status codes onto the error taxonomy. 401 tears
// down the session; a deactivation code on 403 does the same with its own
// mark so the UI can show the dedicated alert.
func (c *Client) mapStatus(status int, env *Envelope) error {
	switch {
	case status == http.StatusUnauthorized:
		c.session.Logout()
		return errs.ErrAuthExpired
	case status == http.StatusForbidden && env.Code == codeAccountDeactivated:
		c.session.Logout()
		return errs.ErrAccountDeactivated
	case status >= 400 && status < 500:
		if len(env.Errors) > 0 {
			return errs.NewValidationError(env.Errors)
		}
		return errs.Mark(errs.Newf("request failed with status %d: %s", status, env.Message), errs.ErrValidation)
	case status >= 500:
		return errs.Mark(errs.Newf("server error %d", status), errs.ErrNetwork)
	}
	return nil
}
