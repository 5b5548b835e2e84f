package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:      ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		RecordStore: RecordStoreConfig{URL: "http://localhost:3000"},
		Session:     SessionConfig{Backend: "memory", CookieName: "s", TTL: time.Hour, SweepInterval: time.Minute},
		Redis:       RedisConfig{Host: "localhost", Port: 6379},
		Import:      ImportConfig{MaxFileSize: 1, MaxConcurrent: 1, MaxWaitTime: time.Second},
		Rate:        RateLimitConfig{Enabled: true, RequestsPerMinute: 100, ImportLimit: 10},
		Logging:     LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.RecordStore.URL != "http://localhost:3000" {
		t.Errorf("RecordStore.URL = %q, want %q", cfg.RecordStore.URL, "http://localhost:3000")
	}
	if cfg.RecordStore.Timeout != 0 {
		t.Errorf("RecordStore.Timeout = %v, want 0", cfg.RecordStore.Timeout)
	}
	if cfg.Session.Backend != SessionBackendMemory {
		t.Errorf("Session.Backend = %q, want %q", cfg.Session.Backend, SessionBackendMemory)
	}
	if cfg.Import.MaxConcurrent != 5 {
		t.Errorf("Import.MaxConcurrent = %d, want %d", cfg.Import.MaxConcurrent, 5)
	}
	if cfg.Import.MaxFileSize != 10485760 {
		t.Errorf("Import.MaxFileSize = %d, want %d", cfg.Import.MaxFileSize, 10485760)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
	if !cfg.Security.EnableCSP {
		t.Error("Security.EnableCSP = false, want true")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RECORD_STORE_URL", "https://hr.example.com/api")
	t.Setenv("IMPORT_MAX_CONCURRENT", "10")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.RecordStore.URL != "https://hr.example.com/api" {
		t.Errorf("RecordStore.URL = %q", cfg.RecordStore.URL)
	}
	if cfg.Import.MaxConcurrent != 10 {
		t.Errorf("Import.MaxConcurrent = %d, want %d", cfg.Import.MaxConcurrent, 10)
	}
	if cfg.Redis.Addr() != "cache:6379" {
		t.Errorf("Redis.Addr() = %q, want %q", cfg.Redis.Addr(), "cache:6379")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("IMPORT_MAX_WAIT_TIME", "1m30s")
	t.Setenv("RECORD_STORE_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Import.MaxWaitTime != 90*time.Second {
		t.Errorf("Import.MaxWaitTime = %v, want %v", cfg.Import.MaxWaitTime, 90*time.Second)
	}
	if cfg.RecordStore.Timeout != 5*time.Second {
		t.Errorf("RecordStore.Timeout = %v, want %v", cfg.RecordStore.Timeout, 5*time.Second)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for non-numeric SERVER_PORT")
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestLoadRecordStore(t *testing.T) {
	t.Setenv("RECORD_STORE_URL", "http://store:4000")
	t.Setenv("LOG_FORMAT", "json")

	rs, lg, err := LoadRecordStore()
	if err != nil {
		t.Fatalf("LoadRecordStore() error = %v", err)
	}
	if rs.URL != "http://store:4000" {
		t.Errorf("URL = %q, want %q", rs.URL, "http://store:4000")
	}
	if lg.Format != "json" {
		t.Errorf("Format = %q, want %q", lg.Format, "json")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"relative store url", func(c *Config) { c.RecordStore.URL = "/employees" }, "RECORD_STORE_URL"},
		{"negative store timeout", func(c *Config) { c.RecordStore.Timeout = -time.Second }, "RECORD_STORE_TIMEOUT"},
		{"unknown session backend", func(c *Config) { c.Session.Backend = "disk" }, "SESSION_BACKEND"},
		{"redis without host", func(c *Config) { c.Session.Backend = "redis"; c.Redis.Host = "" }, "REDIS_HOST"},
		{"zero import size", func(c *Config) { c.Import.MaxFileSize = 0 }, "IMPORT_MAX_FILE_SIZE"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"rate limit disabled ignores zero limits", func(c *Config) {
			c.Rate = RateLimitConfig{Enabled: false}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"SERVER_PORT", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.Password = "hunter2"

	str := cfg.String()
	if strings.Contains(str, "hunter2") {
		t.Error("String() should mask the redis password")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
