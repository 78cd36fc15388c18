package bootstrap

import (
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
