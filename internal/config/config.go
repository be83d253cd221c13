// Package config handles application configuration loading from YAML and environment variables.
package config

import (
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	contextutils "speakroots/internal/utils"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Database configuration (postgres store backend)
	Database DatabaseConfig `json:"database" yaml:"database"`

	// Key-value store used for daily selections and cached pools
	Store StoreConfig `json:"store" yaml:"store"`

	// Redis configuration (redis store backend)
	Redis RedisConfig `json:"redis" yaml:"redis"`

	// Quiz generation and daily selection
	Quiz QuizConfig `json:"quiz" yaml:"quiz"`

	// OpenTelemetry Configuration
	OpenTelemetry OpenTelemetryConfig `json:"open_telemetry" yaml:"open_telemetry"`

	// Internal fields
	IsTest bool `json:"is_test" yaml:"is_test"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port          string `json:"port" yaml:"port"`
	AdminUsername string `json:"admin_username" yaml:"admin_username"`
	// AdminPasswordHash is a bcrypt hash, see `adm hash-password`
	AdminPasswordHash string   `json:"admin_password_hash" yaml:"admin_password_hash"`
	SessionSecret     string   `json:"session_secret" yaml:"session_secret"`
	Debug             bool     `json:"debug" yaml:"debug"`
	LogLevel          string   `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	CORSOrigins       []string `json:"cors_origins" yaml:"cors_origins"`
	// CircuitBreakerThreshold is the number of consecutive 5xx responses after which
	// requests are refused for CircuitBreakerTimeout. Zero disables the breaker.
	CircuitBreakerThreshold int           `json:"circuit_breaker_threshold" yaml:"circuit_breaker_threshold"`
	CircuitBreakerTimeout   time.Duration `json:"circuit_breaker_timeout" yaml:"circuit_breaker_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	URL             string        `json:"url" yaml:"url"`
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`       // Maximum number of open connections to the database
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`       // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"` // Maximum amount of time a connection may be reused
	MigrationsPath  string        `json:"migrations_path" yaml:"migrations_path"`
}

// StoreConfig selects and configures the key-value store backend
type StoreConfig struct {
	Backend string `json:"backend" yaml:"backend" validate:"oneof=memory badger sqlite redis postgres"`
	// Path is the badger directory or the sqlite file
	Path string `json:"path" yaml:"path"`
	// TTL bounds how long entries live. Zero keeps them until deleted.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// RedisConfig represents redis connection configuration
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db" validate:"min=0,max=15"`
}

// QuizConfig controls pool generation and the daily selection
type QuizConfig struct {
	PoolSize      int `json:"pool_size" yaml:"pool_size" validate:"min=1,max=5000"`
	AttemptBudget int `json:"attempt_budget" yaml:"attempt_budget" validate:"min=1"`
	DailyCount    int `json:"daily_count" yaml:"daily_count" validate:"min=0,max=50"`
	// RandomPools draws pools from an unseeded source; by default pools are seeded from the level key
	RandomPools bool `json:"random_pools" yaml:"random_pools"`
	// Timezone decides which calendar date the daily selection uses
	Timezone string `json:"timezone" yaml:"timezone"`
	// PoolSizes overrides PoolSize per subject (e.g. science: 50, spelling: 400)
	PoolSizes map[string]int `json:"pool_sizes" yaml:"pool_sizes"`
	// Prewarm lists level keys whose pools are built at startup
	Prewarm []string `json:"prewarm" yaml:"prewarm"`
}

// OpenTelemetryConfig holds all OpenTelemetry-related configuration
type OpenTelemetryConfig struct {
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`               // Default: "localhost:4317"
	Protocol       string            `json:"protocol" yaml:"protocol"`               // "grpc" or "http", default: "grpc"
	Insecure       bool              `json:"insecure" yaml:"insecure"`               // Default: true (for localhost)
	Headers        map[string]string `json:"headers" yaml:"headers"`                 // For authenticated endpoints
	ServiceName    string            `json:"service_name" yaml:"service_name"`       // Default: "speakroots"
	ServiceVersion string            `json:"service_version" yaml:"service_version"` // From version package
	EnableTracing  bool              `json:"enable_tracing" yaml:"enable_tracing"`
	EnableMetrics  bool              `json:"enable_metrics" yaml:"enable_metrics"`
	EnableLogging  bool              `json:"enable_logging" yaml:"enable_logging"`
	SamplingRate   float64           `json:"sampling_rate" yaml:"sampling_rate"` // Default: 1.0 (100%)
}

// PoolSizeFor returns the target pool size for a subject
func (c *Config) PoolSizeFor(subject string) int {
	if size, ok := c.Quiz.PoolSizes[subject]; ok && size > 0 {
		return size
	}
	return c.Quiz.PoolSize
}

// Subjects returns the subjects that carry a pool size override, sorted
func (c *Config) Subjects() []string {
	subjects := make([]string, 0, len(c.Quiz.PoolSizes))
	for subject := range c.Quiz.PoolSizes {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}

// Location returns the timezone used for daily date keys
func (c *Config) Location() *time.Location {
	loc, _ := contextutils.LoadLocationOrUTC(c.Quiz.Timezone)
	return loc
}

// Validate checks the struct tag constraints of the loaded configuration
func (c *Config) Validate() error {
	if err := contextutils.ValidateStruct(c); err != nil {
		return contextutils.WrapError(err, "invalid configuration")
	}
	if c.Store.Backend == StorePostgres && c.Database.URL == "" {
		return contextutils.NewAppError(contextutils.ErrMissingRequired.Code, contextutils.ErrMissingRequired.Severity,
			"invalid configuration", "database.url is required for the postgres store")
	}
	if c.Store.Backend == StoreRedis && c.Redis.Addr == "" {
		return contextutils.NewAppError(contextutils.ErrMissingRequired.Code, contextutils.ErrMissingRequired.Severity,
			"invalid configuration", "redis.addr is required for the redis store")
	}
	return nil
}

// applyDefaults fills zero-valued fields
func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.CircuitBreakerTimeout == 0 {
		c.Server.CircuitBreakerTimeout = CircuitBreakerTimeout
	}
	if c.Server.AdminUsername == "" {
		c.Server.AdminUsername = "admin"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = DatabaseConnMaxLifetime
	}
	if c.Database.MigrationsPath == "" {
		c.Database.MigrationsPath = "file://migrations"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = StoreMemory
	}
	if c.Store.Path == "" {
		switch c.Store.Backend {
		case StoreBadger:
			c.Store.Path = "data/badger"
		case StoreSQLite:
			c.Store.Path = "data/speakroots.db"
		}
	}
	if c.Quiz.PoolSize == 0 {
		c.Quiz.PoolSize = DefaultPoolSize
	}
	if c.Quiz.AttemptBudget == 0 {
		c.Quiz.AttemptBudget = DefaultAttemptBudget
	}
	if c.Quiz.DailyCount == 0 {
		c.Quiz.DailyCount = DefaultDailyCount
	}
	if c.Quiz.Timezone == "" {
		c.Quiz.Timezone = DefaultTimezone
	}
	if c.OpenTelemetry.ServiceName == "" {
		c.OpenTelemetry.ServiceName = "speakroots"
	}
	if c.OpenTelemetry.Protocol == "" {
		c.OpenTelemetry.Protocol = "grpc"
	}
	if c.OpenTelemetry.Endpoint == "" {
		c.OpenTelemetry.Endpoint = "localhost:4317"
	}
	if c.OpenTelemetry.SamplingRate == 0 {
		c.OpenTelemetry.SamplingRate = 1.0
	}
}

// NewConfig loads configuration from YAML file first, then overrides with environment variables
func NewConfig() (result0 *Config, err error) {
	// Load config from YAML file
	config, err := loadConfigWithOverrides()
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config: %w", err)
	}

	// Override with environment variables
	config.overrideFromEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// NewDefaultConfig returns a configuration with defaults only, for tools and tests that run without a file
func NewDefaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// overrideFromEnv overrides config values with environment variables using reflection
func (c *Config) overrideFromEnv() {
	overrideStructFromEnv(c)
}

// overrideStructFromEnv recursively overrides struct fields with environment variables
func overrideStructFromEnv(v interface{}) {
	overrideStructFromEnvWithPrefix(v, "")
}

var durationType = reflect.TypeOf(time.Duration(0))

// overrideStructFromEnvWithPrefix recursively overrides struct fields with environment variables
func overrideStructFromEnvWithPrefix(v interface{}, prefix string) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		envKey := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
		if prefix != "" {
			envKey = prefix + "_" + envKey
		}

		if field.Type() == durationType {
			if envVal := os.Getenv(envKey); envVal != "" {
				if d, err := time.ParseDuration(envVal); err == nil {
					field.SetInt(int64(d))
				}
			}
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if envVal := os.Getenv(envKey); envVal != "" {
				field.SetString(envVal)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if intVal, err := strconv.ParseInt(envVal, 10, 64); err == nil {
					field.SetInt(intVal)
				}
			}
		case reflect.Float32, reflect.Float64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if floatVal, err := strconv.ParseFloat(envVal, 64); err == nil {
					field.SetFloat(floatVal)
				}
			}
		case reflect.Bool:
			if envVal := os.Getenv(envKey); envVal != "" {
				if boolVal, err := strconv.ParseBool(envVal); err == nil {
					field.SetBool(boolVal)
				}
			}
		case reflect.Slice:
			if envVal := os.Getenv(envKey); envVal != "" {
				// Handle string slices (like CORS_ORIGINS)
				if field.Type().Elem().Kind() == reflect.String {
					slice := strings.Split(envVal, ",")
					field.Set(reflect.ValueOf(slice))
				}
			}
		case reflect.Struct:
			if field.CanAddr() {
				fieldPrefix := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
				if prefix != "" {
					fieldPrefix = prefix + "_" + fieldPrefix
				}
				overrideStructFromEnvWithPrefix(field.Addr().Interface(), fieldPrefix)
			}
		}
	}
}

// loadConfigWithOverrides loads the config file named by SPEAKROOTS_CONFIG_FILE, or config.yaml
func loadConfigWithOverrides() (result0 *Config, err error) {
	if envPath := os.Getenv(ConfigFileEnv); envPath != "" {
		config, err := loadConfigFromFile(envPath)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config from %s: %w", envPath, err)
		}
		return config, nil
	}

	config, err := loadConfigFromFile("config.yaml")
	if os.IsNotExist(err) {
		// No file at all is fine: defaults and environment still apply
		return &Config{}, nil
	}
	return config, err
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (result0 *Config, err error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
