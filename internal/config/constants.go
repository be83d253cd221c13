package config

import "time"

// Timeout constants
const (
	// HTTP timeouts
	DefaultHTTPTimeout    = 60 * time.Second
	ServerShutdownTimeout = 30 * time.Second
	ClientRequestTimeout  = 15 * time.Second
	CircuitBreakerTimeout = 30 * time.Second

	// Database timeouts
	DatabaseConnMaxLifetime = 5 * time.Minute
	StorePingTimeout        = 5 * time.Second

	// Session timeouts
	SessionMaxAge = 7 * 24 * time.Hour // 7 days

	// Play timeouts
	PlayWriteTimeout = 10 * time.Second
	PlayReadTimeout  = 5 * time.Minute
)

// Quiz defaults
const (
	DefaultPoolSize      = 100
	DefaultAttemptBudget = 2000
	DefaultDailyCount    = 10
	MaxDailyCount        = 50
	// MaxPoolSize bounds client-supplied pool sizes for index picks
	MaxPoolSize = 10000
	DefaultTimezone      = "UTC"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreBadger   = "badger"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Session configuration constants
const (
	// Session settings
	SessionPath     = "/"
	SessionHTTPOnly = true
	SessionSecure   = false // Set to true in production with HTTPS

	// Session name
	SessionName = "speakroots-session"

	// SessionLevelKey is the session field holding the preferred level key
	SessionLevelKey = "level_key"
)

// Security configuration constants
const (
	// Content Security Policy
	DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; img-src 'self' data:;"
)

// ConfigFileEnv names the environment variable pointing at the YAML config file
const ConfigFileEnv = "SPEAKROOTS_CONFIG_FILE"
