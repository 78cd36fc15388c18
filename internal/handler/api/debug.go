package api

import (
	"net/http"
	"sort"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/handler/dto/response"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/handler/httperr"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/cache"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/realtime"
	syncpkg "github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/sync"

	"github.com/gin-gonic/gin"
)

// DebugHandler exposes a read-only local view of the sync core for the dev
// panel: the mirrored bookings, cache keys, and channel health.
type DebugHandler struct {
	store      *syncpkg.BookingStore
	reconciler *syncpkg.Reconciler
	cache      *cache.TimedCache
	channel    *realtime.Channel
}

func NewDebugHandler(store *syncpkg.BookingStore, rec *syncpkg.Reconciler, c *cache.TimedCache, ch *realtime.Channel) *DebugHandler {
	return &DebugHandler{store: store, reconciler: rec, cache: c, channel: ch}
}

func (h *DebugHandler) Bookings(c *gin.Context) {
	records, err := h.store.Bookings(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadGateway, err, "failed to load bookings", nil)
		return
	}
	c.JSON(http.StatusOK, response.BookingsResponse{
		Bookings: response.NewBookingViews(records),
		Unread:   h.reconciler.UnreadNotifications(),
	})
}

func (h *DebugHandler) CacheKeys(c *gin.Context) {
	keys := h.cache.Keys()
	sort.Strings(keys)
	c.JSON(http.StatusOK, response.CacheKeysResponse{Keys: keys, Count: len(keys)})
}

func (h *DebugHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{
		Status:  "ok",
		Channel: h.channel.State().String(),
	})
}
