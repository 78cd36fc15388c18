package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// The debug surface is read-only, so only GET is allowed through CORS.
func NewCORSMiddleware(cfg config.DebugConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       cfg.CORSMaxAge,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}
