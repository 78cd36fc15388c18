package bootstrap

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	InfraModule,
	SyncModule,
	HandlerModule,
)
