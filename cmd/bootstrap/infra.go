package bootstrap

import (
	"log/slog"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/cache"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/realtime"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/rest"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/session"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		clock.NewRealClock,
		func(clk clock.Clock, logger *slog.Logger) *session.Session {
			return session.New(clk, logger)
		},
		func(cfg config.Config, clk clock.Clock, logger *slog.Logger) *cache.TimedCache {
			return cache.NewTimedCache(cache.NewTTLTable(cfg.Cache), clk, logger)
		},
		func(cfg config.Config, sess *session.Session) *rest.Client {
			return rest.NewClient(cfg.API, sess)
		},
		func(c *rest.Client) rest.API { return c },
		func(cfg config.Config, sess *session.Session, logger *slog.Logger) *realtime.Channel {
			return realtime.NewChannel(cfg.Socket, sess, logger)
		},
	),
)
