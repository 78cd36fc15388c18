package bootstrap

import (
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewDebugHandler,
	),
)
