package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (API endpoints, auth)
// - default: Values common across all environments (TTLs, tolerances, timeouts)
// -----------------------------------------------------------------------------

type Config struct {
	Auth   AuthConfig
	API    APIConfig
	Socket SocketConfig
	Cache  CacheConfig
	Sync   SyncConfig
	Window WindowConfig
	Debug  DebugConfig
	Log    LogConfig
}

type AuthConfig struct {
	// Token issued by the marketplace login flow; the daemon cannot mint
	// its own.
	Token string `envconfig:"AUTH_TOKEN" required:"true"`
}

type APIConfig struct {
	BaseURL string        `envconfig:"API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
}

type SocketConfig struct {
	URL                string        `envconfig:"SOCKET_URL" required:"true"`
	HandshakeTimeout   time.Duration `envconfig:"SOCKET_HANDSHAKE_TIMEOUT" default:"10s"`
	ReconnectAttempts  uint64        `envconfig:"SOCKET_RECONNECT_ATTEMPTS" default:"10"`
	ReconnectBaseDelay time.Duration `envconfig:"SOCKET_RECONNECT_BASE_DELAY" default:"1s"`
	ReconnectMaxDelay  time.Duration `envconfig:"SOCKET_RECONNECT_MAX_DELAY" default:"30s"`
}

// CacheConfig maps resource types to TTLs. Infrequently changing resources
// carry long TTLs; booking state is near-live and expires quickly.
type CacheConfig struct {
	TTLProfile       time.Duration `envconfig:"CACHE_TTL_PROFILE" default:"10m"`
	TTLEarnings      time.Duration `envconfig:"CACHE_TTL_EARNINGS" default:"5m"`
	TTLBookings      time.Duration `envconfig:"CACHE_TTL_BOOKINGS" default:"30s"`
	TTLBooking       time.Duration `envconfig:"CACHE_TTL_BOOKING" default:"30s"`
	TTLNotifications time.Duration `envconfig:"CACHE_TTL_NOTIFICATIONS" default:"1m"`
	TTLRanking       time.Duration `envconfig:"CACHE_TTL_RANKING" default:"15m"`
	TTLServices      time.Duration `envconfig:"CACHE_TTL_SERVICES" default:"1h"`
	TTLZones         time.Duration `envconfig:"CACHE_TTL_ZONES" default:"1h"`
	TTLTier          time.Duration `envconfig:"CACHE_TTL_TIER" default:"15m"`
	TTLTierBenefits  time.Duration `envconfig:"CACHE_TTL_TIER_BENEFITS" default:"1h"`
	TTLIncentive     time.Duration `envconfig:"CACHE_TTL_INCENTIVE" default:"15m"`
	TTLDefault       time.Duration `envconfig:"CACHE_TTL_DEFAULT" default:"30s"`
}

type SyncConfig struct {
	RefreshDebounce time.Duration `envconfig:"SYNC_REFRESH_DEBOUNCE" default:"2s"`
}

type WindowConfig struct {
	ArrivalBefore time.Duration `envconfig:"WINDOW_ARRIVAL_BEFORE" default:"60m"`
	ArrivalAfter  time.Duration `envconfig:"WINDOW_ARRIVAL_AFTER" default:"60m"`
}

type DebugConfig struct {
	Enabled      bool          `envconfig:"DEBUG_SERVER_ENABLED" default:"false"`
	Port         string        `envconfig:"DEBUG_SERVER_PORT" default:"8790"`
	AllowOrigins []string      `envconfig:"DEBUG_CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	CORSMaxAge   time.Duration `envconfig:"DEBUG_CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func (c *APIConfig) Endpoint(path string) string {
	return fmt.Sprintf("%s%s", c.BaseURL, path)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Auth: AuthConfig{
			Token: "test-token",
		},
		API: APIConfig{
			BaseURL: "http://localhost:18080",
			Timeout: 2 * time.Second,
		},
		Socket: SocketConfig{
			URL:                "ws://localhost:18081/socket",
			HandshakeTimeout:   time.Second,
			ReconnectAttempts:  3,
			ReconnectBaseDelay: 10 * time.Millisecond,
			ReconnectMaxDelay:  50 * time.Millisecond,
		},
		Cache: CacheConfig{
			TTLProfile:       10 * time.Minute,
			TTLEarnings:      5 * time.Minute,
			TTLBookings:      30 * time.Second,
			TTLBooking:       30 * time.Second,
			TTLNotifications: time.Minute,
			TTLRanking:       15 * time.Minute,
			TTLServices:      time.Hour,
			TTLZones:         time.Hour,
			TTLTier:          15 * time.Minute,
			TTLTierBenefits:  time.Hour,
			TTLIncentive:     15 * time.Minute,
			TTLDefault:       30 * time.Second,
		},
		Sync: SyncConfig{
			RefreshDebounce: 50 * time.Millisecond,
		},
		Window: WindowConfig{
			ArrivalBefore: time.Hour,
			ArrivalAfter:  time.Hour,
		},
		Log: LogConfig{
			Level: "error", // Error level only for tests
		},
	}
}
