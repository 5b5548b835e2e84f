// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server      ServerConfig      `envPrefix:"SERVER_"`
	RecordStore RecordStoreConfig `envPrefix:"RECORD_STORE_"`
	Session     SessionConfig     `envPrefix:"SESSION_"`
	Redis       RedisConfig       `envPrefix:"REDIS_"`
	Import      ImportConfig      `envPrefix:"IMPORT_"`
	Rate        RateLimitConfig   `envPrefix:"RATE_LIMIT_"`
	Security    SecurityConfig
	Logging     LoggingConfig `envPrefix:"LOG_"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"HOST" envDefault:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"PORT" envDefault:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 60s)
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
}

// RecordStoreConfig points at the remote employee Record Store.
type RecordStoreConfig struct {
	// URL is the store base URL; the collection lives at URL/employees
	URL string `env:"URL" envDefault:"http://localhost:3000"`

	// Timeout bounds each store request; zero means no client-side timeout
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`
}

// SessionConfig holds per-browser session settings.
type SessionConfig struct {
	// Backend is where session state lives: memory or redis (default: memory)
	Backend string `env:"BACKEND" envDefault:"memory"`

	// CookieName names the session cookie (default: hrpanel_session)
	CookieName string `env:"COOKIE_NAME" envDefault:"hrpanel_session"`

	// SecureCookie sets the Secure attribute on the session cookie (default: false)
	SecureCookie bool `env:"SECURE_COOKIE" envDefault:"false"`

	// TTL is how long an idle session is kept (default: 24h)
	TTL time.Duration `env:"TTL" envDefault:"24h"`

	// SweepInterval is how often idle memory sessions are removed (default: 10m)
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`
}

// RedisConfig holds connection settings for the redis session backend.
type RedisConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`

	// KeyPrefix is prepended to every session key (default: hrpanel:session:)
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"hrpanel:session:"`

	// ConnectTimeout bounds the startup ping (default: 10s)
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"MAX_FILE_SIZE" envDefault:"10485760"`

	// MaxConcurrent is the maximum number of parallel imports (default: 5)
	MaxConcurrent int `env:"MAX_CONCURRENT" envDefault:"5"`

	// MaxWaitTime is how long to wait for an import slot (default: 30s)
	MaxWaitTime time.Duration `env:"MAX_WAIT_TIME" envDefault:"30s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"ENABLED" envDefault:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"REQUESTS_PER_MINUTE" envDefault:"100"`

	// ImportLimit is requests per minute for the import endpoint (default: 10)
	ImportLimit int `env:"IMPORT" envDefault:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" envDefault:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LEVEL" envDefault:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"FORMAT" envDefault:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Addr returns the redis address in host:port format.
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
