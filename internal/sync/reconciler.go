package sync

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/booking"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/domain/timewindow"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/realtime"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"

	"github.com/google/uuid"
)

// Payload shapes for the event vocabulary. Unknown fields are ignored.
type bookingPayload struct {
	BookingID uuid.UUID `json:"bookingId"`
}

type timeoutWarningPayload struct {
	BookingID        uuid.UUID `json:"bookingId"`
	SecondsRemaining int       `json:"secondsRemaining"`
}

type statusChangedPayload struct {
	BookingID uuid.UUID      `json:"bookingId"`
	Status    booking.Status `json:"status"`
}

type conflictPayload struct {
	CurrentBookingID uuid.UUID `json:"currentBookingId"`
}

type cancelledPayload struct {
	CancelledBookingID uuid.UUID `json:"cancelledBookingId"`
}

type notificationPayload struct {
	ID string `json:"id"`
}

// Reconciler applies server-pushed deltas to the BookingStore in delivery
// order and keeps the cache honest afterwards. It never surfaces errors to
// the UI: a malformed payload is logged and dropped.
type Reconciler struct {
	store   *BookingStore
	channel *realtime.Channel
	clk     clock.Clock
	logger  *slog.Logger

	refresh  *Debouncer
	handlers map[string]realtime.Handler
	ctx      context.Context
	cancel   context.CancelFunc

	mu     sync.Mutex
	subs   []*realtime.Subscription
	seen   map[string]struct{}
	unread int
	limbo  map[uuid.UUID]*timewindow.DeadlineWatch
}

func NewReconciler(store *BookingStore, channel *realtime.Channel, clk clock.Clock, cfg config.SyncConfig, logger *slog.Logger) *Reconciler {
	r := &Reconciler{
		store:   store,
		channel: channel,
		clk:     clk,
		logger:  logger,
		seen:    make(map[string]struct{}),
		limbo:   make(map[uuid.UUID]*timewindow.DeadlineWatch),
	}
	r.refresh = NewDebouncer(clk, cfg.RefreshDebounce, r.refreshList)
	r.handlers = map[string]realtime.Handler{
		realtime.EventNewAssignment:            r.onNewAssignment,
		realtime.EventAssignmentTimeoutWarning: r.onTimeoutWarning,
		realtime.EventQuoteTimeoutWarning:      r.onTimeoutWarning,
		realtime.EventQuoteAccepted:            r.onPaid,
		realtime.EventPaymentConfirmed:         r.onPaid,
		realtime.EventQuoteDeclined:            r.onQuoteDeclined,
		realtime.EventBookingStatusChanged:     r.onStatusChanged,
		realtime.EventJobConflictWarning:       r.onJobConflict,
		realtime.EventNextJobCancelled:         r.onNextJobCancelled,
		realtime.EventJobStartApproved:         r.onJobStartApproved,
		realtime.EventJobCompleteApproved:      r.onJobCompleteApproved,
		realtime.EventNotification:             r.onNotification,
	}
	return r
}

// Apply runs the handler registered for the event's name. Events arrive on
// the channel's dispatch goroutine, so application order is delivery order.
func (r *Reconciler) Apply(ev realtime.Event) {
	h, ok := r.handlers[ev.Name]
	if !ok {
		r.logger.Debug("no handler for event", "event", ev.Name)
		return
	}
	h(ev)
}

// Start subscribes the full event vocabulary and arms the reconnect hook.
// Reconnection carries no event replay, so it forces an immediate refetch.
func (r *Reconciler) Start(ctx context.Context) {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.mu.Lock()
	for name := range r.handlers {
		r.subs = append(r.subs, r.channel.Subscribe(name, r.Apply))
	}
	r.mu.Unlock()

	r.channel.OnReconnect(func() {
		r.refresh.Flush()
	})
}

// Stop disposes every subscription and cancels pending refreshes.
func (r *Reconciler) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.refresh.Stop()

	r.mu.Lock()
	subs := r.subs
	r.subs = nil
	watches := r.limbo
	r.limbo = make(map[uuid.UUID]*timewindow.DeadlineWatch)
	r.mu.Unlock()
	for _, sub := range subs {
		sub.Close()
	}
	for _, w := range watches {
		w.Stop()
	}
}

// UnreadNotifications reports the duplicate-guarded unread counter.
func (r *Reconciler) UnreadNotifications() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unread
}

func (r *Reconciler) MarkNotificationsRead() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unread = 0
}

// RequestRefresh is the debounced trigger exposed to consumers; bursts of
// push events collapse into one trailing-edge list fetch.
func (r *Reconciler) RequestRefresh() {
	r.refresh.Trigger()
}

// RefreshNow bypasses the debounce window for user-initiated refreshes.
func (r *Reconciler) RefreshNow() {
	r.refresh.Flush()
}

func (r *Reconciler) refreshList() {
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := r.store.Refresh(ctx); err != nil {
		r.logger.Warn("booking list refresh failed", "error", err)
	}
}

// ---------------------------------------------------------------------------
// Event handlers — one per name, applied in delivery order.
// ---------------------------------------------------------------------------

// The push payload of a new assignment does not carry the record's full
// shape, so the list is refetched instead of upserted.
func (r *Reconciler) onNewAssignment(realtime.Event) {
	r.refresh.Trigger()
}

// A timeout warning flags the record and arms a deadline watch so the
// remaining time counts down locally and TimedOut flips exactly once when
// the limbo deadline passes without a resolving event.
func (r *Reconciler) onTimeoutWarning(ev realtime.Event) {
	var p timeoutWarningPayload
	if !r.decode(ev, &p) {
		return
	}
	r.store.SetFlags(p.BookingID, func(f *booking.Flags) {
		f.TimeoutWarning = true
		f.TimeoutRemaining = time.Duration(p.SecondsRemaining) * time.Second
	})
	r.watchLimbo(p.BookingID, r.clk.Now().Add(time.Duration(p.SecondsRemaining)*time.Second))
}

func (r *Reconciler) watchLimbo(id uuid.UUID, deadline time.Time) {
	w := timewindow.NewDeadlineWatch(r.clk, deadline,
		func(d timewindow.Deadline) {
			r.store.SetFlags(id, func(f *booking.Flags) {
				f.TimeoutRemaining = d.Remaining
			})
		},
		func() {
			r.store.SetFlags(id, func(f *booking.Flags) {
				f.TimedOut = true
			})
			r.stopLimbo(id)
		})

	r.mu.Lock()
	if old, ok := r.limbo[id]; ok {
		old.Stop()
	}
	r.limbo[id] = w
	r.mu.Unlock()

	w.Start()
}

// stopLimbo disarms the watch once the limbo resolves (payment, status
// change, removal) or the record leaves the mirror.
func (r *Reconciler) stopLimbo(id uuid.UUID) {
	r.mu.Lock()
	w, ok := r.limbo[id]
	if ok {
		delete(r.limbo, id)
	}
	r.mu.Unlock()
	if ok {
		w.Stop()
	}
}

func (r *Reconciler) onPaid(ev realtime.Event) {
	var p bookingPayload
	if !r.decode(ev, &p) {
		return
	}
	now := r.clk.Now()
	paid := booking.StatusPaid
	r.store.Merge(p.BookingID, booking.Patch{Status: &paid, PaidAt: &now})
	r.stopLimbo(p.BookingID)
}

func (r *Reconciler) onQuoteDeclined(ev realtime.Event) {
	var p bookingPayload
	if !r.decode(ev, &p) {
		return
	}
	r.store.Remove(p.BookingID)
	r.stopLimbo(p.BookingID)
}

func (r *Reconciler) onStatusChanged(ev realtime.Event) {
	var p statusChangedPayload
	if !r.decode(ev, &p) {
		return
	}
	if !p.Status.Valid() {
		r.logger.Warn("dropping status change with unknown status", "status", p.Status, "booking", p.BookingID)
		return
	}
	r.stopLimbo(p.BookingID)
	if p.Status.Removing() {
		r.store.Remove(p.BookingID)
		return
	}
	r.store.Merge(p.BookingID, booking.StatusPatch(p.Status))
}

func (r *Reconciler) onJobConflict(ev realtime.Event) {
	var p conflictPayload
	if !r.decode(ev, &p) {
		return
	}
	r.store.SetFlags(p.CurrentBookingID, func(f *booking.Flags) {
		f.JobConflict = true
	})
}

func (r *Reconciler) onNextJobCancelled(ev realtime.Event) {
	var p cancelledPayload
	if !r.decode(ev, &p) {
		return
	}
	r.store.Remove(p.CancelledBookingID)
	r.stopLimbo(p.CancelledBookingID)
}

func (r *Reconciler) onJobStartApproved(ev realtime.Event) {
	var p bookingPayload
	if !r.decode(ev, &p) {
		return
	}
	r.store.Merge(p.BookingID, booking.StatusPatch(booking.StatusJobStarted))
}

func (r *Reconciler) onJobCompleteApproved(ev realtime.Event) {
	var p bookingPayload
	if !r.decode(ev, &p) {
		return
	}
	r.store.Merge(p.BookingID, booking.StatusPatch(booking.StatusCompleted))
}

// Unlike field merges, the unread counter is an increment, so duplicate
// delivery is guarded by the seen-id set.
func (r *Reconciler) onNotification(ev realtime.Event) {
	var p notificationPayload
	if !r.decode(ev, &p) || p.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.seen[p.ID]; dup {
		return
	}
	r.seen[p.ID] = struct{}{}
	r.unread++
}

func (r *Reconciler) decode(ev realtime.Event, dst any) bool {
	if err := json.Unmarshal(ev.Payload, dst); err != nil {
		r.logger.Warn("dropping malformed event payload", "event", ev.Name, "error", err)
		return false
	}
	return true
}
