package bootstrap

import (
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/handler/middleware"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"

	"log/slog"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		func(cfg config.Config) *slog.Logger {
			return middleware.NewLogger(cfg.Log).GetSlogLogger()
		},
	),
)
