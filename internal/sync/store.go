package sync

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/booking"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/timewindow"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/cache"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/rest"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const (
	keyBookings      = "bookings"
	keyBookingPrefix = "booking:"
)

func bookingKey(id uuid.UUID) string {
	return keyBookingPrefix + id.String()
}

// BookingStore is the authoritative in-memory mirror of the provider's
// bookings and the single writer of booking state. Reads are cache-gated
// and deduplicated; every caller gets deep copies, never aliases into the
// mirror. Status moves only on REST response bodies and reconciler-applied
// events — never a local timer.
type BookingStore struct {
	api    rest.API
	cache  *cache.TimedCache
	clk    clock.Clock
	window config.WindowConfig
	logger *slog.Logger

	mu      sync.RWMutex
	records map[uuid.UUID]*booking.Booking
	order   []uuid.UUID

	// alive guards against a late fetch writing into a torn-down store.
	alive atomic.Bool
}

func NewBookingStore(api rest.API, c *cache.TimedCache, clk clock.Clock, window config.WindowConfig, logger *slog.Logger) *BookingStore {
	s := &BookingStore{
		api:     api,
		cache:   c,
		clk:     clk,
		window:  window,
		logger:  logger,
		records: make(map[uuid.UUID]*booking.Booking),
	}
	s.alive.Store(true)
	return s
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// Bookings returns the current list, fetching through the cache when the
// list key is missing or stale. Concurrent callers share one HTTP call.
func (s *BookingStore) Bookings(ctx context.Context) ([]booking.Booking, error) {
	_, err := s.cache.Fetch(ctx, keyBookings, cache.ResourceBookings, func(ctx context.Context) (any, error) {
		list, err := s.api.FetchBookings(ctx)
		if err != nil {
			return nil, err
		}
		s.applyList(list.Bookings)
		return len(list.Bookings), nil
	})
	if err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// BookingByID fetches the single record through its own cache key.
func (s *BookingStore) BookingByID(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	_, err := s.cache.Fetch(ctx, bookingKey(id), cache.ResourceBooking, func(ctx context.Context) (any, error) {
		b, err := s.api.FetchBooking(ctx, id)
		if err != nil {
			return nil, err
		}
		s.upsert(*b)
		return b.ID, nil
	})
	if err != nil {
		return booking.Booking{}, err
	}

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return booking.Booking{}, errs.ErrBookingNotFound
	}
	return copyRecord(rec), nil
}

// Lookup reads the mirror without any freshness check or fetch. Detail
// views that already hold a loaded record use this for live updates.
func (s *BookingStore) Lookup(id uuid.UUID) (booking.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return booking.Booking{}, false
	}
	return copyRecord(rec), true
}

// BookingsByStatus filters the freshness-gated list.
func (s *BookingStore) BookingsByStatus(ctx context.Context, statuses ...booking.Status) ([]booking.Booking, error) {
	all, err := s.Bookings(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[booking.Status]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	out := make([]booking.Booking, 0, len(all))
	for _, b := range all {
		if want[b.Status] {
			out = append(out, b)
		}
	}
	return out, nil
}

// Refresh forces a fresh list fetch regardless of TTL. Reconnects and the
// debounced push-event trigger land here.
func (s *BookingStore) Refresh(ctx context.Context) error {
	s.cache.Invalidate(keyBookings)
	_, err := s.Bookings(ctx)
	return err
}

func (s *BookingStore) snapshot() []booking.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]booking.Booking, 0, len(s.order))
	for _, id := range s.order {
		if rec, ok := s.records[id]; ok {
			out = append(out, copyRecord(rec))
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Mutations — one network call each, shallow merge on success (server
// fields win), record untouched on failure, no automatic retry.
// ---------------------------------------------------------------------------

func (s *BookingStore) AcceptAssignment(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	patch, err := s.api.AcceptAssignment(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}
	return s.applyMutation(id, patch, booking.StatusWaitingQuote)
}

func (s *BookingStore) RejectAssignment(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	patch, err := s.api.RejectAssignment(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}
	return s.applyMutation(id, patch, booking.StatusRejected)
}

func (s *BookingStore) SendQuote(ctx context.Context, id uuid.UUID, amount float64, durationMinutes int) (booking.Booking, error) {
	patch, err := s.api.SendQuote(ctx, id, rest.QuoteRequest{Amount: amount, DurationMinutes: durationMinutes})
	if err != nil {
		return booking.Booking{}, err
	}
	if patch.QuotationAmount == nil {
		patch.QuotationAmount = &amount
	}
	if patch.QuotedDurationMinutes == nil {
		patch.QuotedDurationMinutes = &durationMinutes
	}
	return s.applyMutation(id, patch, booking.StatusWaitingAcceptance)
}

func (s *BookingStore) ConfirmScope(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	patch, err := s.api.ConfirmScope(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}
	return s.applyMutation(id, patch, "")
}

func (s *BookingStore) MarkOnTheWay(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	patch, err := s.api.MarkOnTheWay(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}
	return s.applyMutation(id, patch, booking.StatusOnTheWay)
}

// RequestJobStart is gated on the scheduled arrival window; book-now jobs
// carry no scheduled time and skip the gate.
func (s *BookingStore) RequestJobStart(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	if rec, ok := s.Lookup(id); ok && !rec.IsBookNow && rec.RequestedDatetime != nil {
		res := timewindow.Evaluate(s.clk.Now(), *rec.RequestedDatetime, s.window.ArrivalBefore, s.window.ArrivalAfter)
		if res.Status != timewindow.Available {
			return booking.Booking{}, errs.Mark(
				errs.Newf("job start window for %s is %s", id, res.Status), errs.ErrValidation)
		}
	}
	patch, err := s.api.RequestJobStart(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}
	return s.applyMutation(id, patch, booking.StatusJobStartRequested)
}

func (s *BookingStore) RequestJobComplete(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	patch, err := s.api.RequestJobComplete(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}
	return s.applyMutation(id, patch, booking.StatusJobCompleteRequest)
}

func (s *BookingStore) Cancel(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	patch, err := s.api.CancelBooking(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}
	return s.applyMutation(id, patch, booking.StatusCancelled)
}

// applyMutation merges the server's response fields into the record and,
// when the server did not echo a status, sets the locally-known next one.
// Records reaching a removing status leave the mirror.
func (s *BookingStore) applyMutation(id uuid.UUID, patch booking.Patch, next booking.Status) (booking.Booking, error) {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return booking.Booking{}, errs.ErrBookingNotFound
	}
	if patch.Status == nil && next != "" {
		// サーバがstatusを省略した時だけ遷移表で前提を検証する。
		// サーバが明示したstatusは遷移表に無くてもそのまま従う。
		if !rec.Status.CanTransitionTo(next) {
			s.mu.Unlock()
			return booking.Booking{}, errs.Mark(
				errs.Newf("booking %s cannot move %s -> %s", id, rec.Status, next), errs.ErrInvalidTransition)
		}
		patch.Status = &next
	}
	patch.Apply(rec)
	out := copyRecord(rec)
	if rec.Status.Removing() {
		s.removeLocked(id)
	}
	s.mu.Unlock()

	s.invalidateFor(id)
	return out, nil
}

// ---------------------------------------------------------------------------
// Writer operations shared with the Reconciler
// ---------------------------------------------------------------------------

// Merge applies a server-confirmed delta to the record. Patches are field
// overwrites, so replaying the same event is harmless and the later of two
// events for one booking wins.
func (s *BookingStore) Merge(id uuid.UUID, patch booking.Patch) bool {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	patch.Apply(rec)
	s.mu.Unlock()

	s.invalidateFor(id)
	return true
}

// Remove drops the record entirely (declines, cancellations, rejections).
func (s *BookingStore) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	_, ok := s.records[id]
	if ok {
		s.removeLocked(id)
	}
	s.mu.Unlock()

	s.invalidateFor(id)
	return ok
}

// SetFlags adjusts the UI-only display flags without touching status.
func (s *BookingStore) SetFlags(id uuid.UUID, mutate func(*booking.Flags)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return false
	}
	mutate(&rec.Flags)
	return true
}

func (s *BookingStore) upsert(b booking.Booking) {
	if !s.alive.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[b.ID]; ok {
		b.Flags = rec.Flags
		*rec = b
		return
	}
	s.records[b.ID] = &b
	s.order = append(s.order, b.ID)
}

// applyList installs the server list as the new authority. Existing records
// are merged by id so display flags survive a refetch racing an optimistic
// update; records the server no longer returns are dropped.
func (s *BookingStore) applyList(list []booking.Booking) {
	if !s.alive.Load() {
		s.logger.Debug("discarding list fetch result after teardown")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make(map[uuid.UUID]*booking.Booking, len(list))
	order := make([]uuid.UUID, 0, len(list))
	for i := range list {
		b := list[i]
		if old, ok := s.records[b.ID]; ok {
			b.Flags = old.Flags
		}
		records[b.ID] = &b
		order = append(order, b.ID)
	}
	s.records = records
	s.order = order
}

func (s *BookingStore) removeLocked(id uuid.UUID) {
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *BookingStore) invalidateFor(id uuid.UUID) {
	s.cache.Invalidate(keyBookings)
	s.cache.Invalidate(bookingKey(id))
}

// Teardown clears the mirror and stops late fetch results from writing into
// it. Constructed stores are single-lifecycle: build a new one to restart.
func (s *BookingStore) Teardown() {
	s.alive.Store(false)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[uuid.UUID]*booking.Booking)
	s.order = nil
}

func copyRecord(rec *booking.Booking) booking.Booking {
	var out booking.Booking
	if err := copier.CopyWithOption(&out, rec, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on invalid destinations; fall back to the
		// shallow copy rather than dropping the read.
		out = *rec
	}
	return out
}
