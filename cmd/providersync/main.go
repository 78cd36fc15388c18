package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/cmd/bootstrap"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/handler"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/handler/api"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/cache"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/realtime"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/session"
	syncpkg "github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// startSync wires the session, socket and reconciler into the fx lifecycle:
// connect on start, tear everything down on stop.
func startSync(
	lc fx.Lifecycle,
	cfg config.Config,
	sess *session.Session,
	channel *realtime.Channel,
	store *syncpkg.BookingStore,
	reconciler *syncpkg.Reconciler,
	timedCache *cache.TimedCache,
	logger *slog.Logger,
) {
	sess.OnLogout(func() {
		reconciler.Stop()
		channel.Close()
		store.Teardown()
		timedCache.Clear()
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sess.SetToken(cfg.Auth.Token)
			if err := channel.Connect(context.Background()); err != nil {
				return err
			}
			reconciler.Start(context.Background())
			reconciler.RefreshNow()
			logger.Info("sync core started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			sess.Logout()
			logger.Info("sync core stopped")
			return nil
		},
	})
}

func startDebugServer(lc fx.Lifecycle, cfg config.Config, debugHandler *api.DebugHandler, logger *slog.Logger) {
	if !cfg.Debug.Enabled {
		return
	}
	engine := gin.New()
	handler.NewRouter(engine, cfg, debugHandler)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			listenAddr := ":" + cfg.Debug.Port
			logger.Info("debug server listening", "address", listenAddr)
			go func() {
				if err := engine.Run(listenAddr); err != nil {
					logger.Error("debug server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Invoke(
			startSync,
			startDebugServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop cleanly", "error", err)
	}

	slog.Info("stopped")
}
