package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/handler/api"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/handler/middleware"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, debugHandler *api.DebugHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, debugHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.Debug))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, debugHandler *api.DebugHandler) {
	engine.GET("/healthz", debugHandler.Health)

	v1 := engine.Group("/v1")
	{
		addRoutes(v1, []route{
			{Method: http.MethodGet, Path: "/bookings", Handler: debugHandler.Bookings},
			{Method: http.MethodGet, Path: "/cache/keys", Handler: debugHandler.CacheKeys},
		})
	}
}

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		group.Handle(r.Method, r.Path, r.Handler)
	}
}
