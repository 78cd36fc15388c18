package bootstrap

import (
	"log/slog"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/cache"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/realtime"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/rest"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
	syncpkg "github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/sync"

	"go.uber.org/fx"
)

var SyncModule = fx.Module("sync",
	fx.Provide(
		func(api rest.API, c *cache.TimedCache, clk clock.Clock, cfg config.Config, logger *slog.Logger) *syncpkg.BookingStore {
			return syncpkg.NewBookingStore(api, c, clk, cfg.Window, logger)
		},
		func(store *syncpkg.BookingStore, ch *realtime.Channel, clk clock.Clock, cfg config.Config, logger *slog.Logger) *syncpkg.Reconciler {
			return syncpkg.NewReconciler(store, ch, clk, cfg.Sync, logger)
		},
	),
)
