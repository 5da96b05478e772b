package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Port              string `json:"port" yaml:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec" yaml:"request_timeout_sec"`
	// LegacyPrefix serves every route a second time under this path prefix.
	LegacyPrefix    string `json:"legacy_prefix" yaml:"legacy_prefix"`
	MaxBatchSymbols int    `json:"max_batch_symbols" yaml:"max_batch_symbols"`
	CORSAllowOrigin string `json:"cors_allow_origin" yaml:"cors_allow_origin"`
}

type Upstream struct {
	// Enabled opts in to real quotes. Without an API key every quote is
	// synthetic regardless.
	Enabled              bool   `json:"enabled" yaml:"enabled"`
	APIKey               string `json:"api_key" yaml:"api_key"`
	BaseURL              string `json:"base_url" yaml:"base_url"`
	DailyLimit           int    `json:"daily_limit" yaml:"daily_limit"`
	MaxRequestsPerMinute int    `json:"max_requests_per_minute" yaml:"max_requests_per_minute"`
	TimeoutSec           int    `json:"timeout_sec" yaml:"timeout_sec"`
	// Timezone names the zone whose calendar day resets the quota.
	Timezone string `json:"timezone" yaml:"timezone"`
}

type Cache struct {
	TTLSeconds int `json:"ttl_sec" yaml:"ttl_sec"`
	MaxItems   int `json:"max_items" yaml:"max_items"`
}

type Log struct {
	Level string `json:"level" yaml:"level"`
	JSON  bool   `json:"json" yaml:"json"`
}

type Config struct {
	Server   Server   `json:"server" yaml:"server"`
	Upstream Upstream `json:"upstream" yaml:"upstream"`
	Cache    Cache    `json:"cache" yaml:"cache"`
	Log      Log      `json:"log" yaml:"log"`
}

// UpstreamActive reports whether real quotes may be fetched.
func (c Config) UpstreamActive() bool {
	return c.Upstream.Enabled && c.Upstream.APIKey != ""
}

func Default() Config {
	return Config{
		Server: Server{
			Port:              "8080",
			RequestTimeoutSec: 10,
			LegacyPrefix:      "/api",
			MaxBatchSymbols:   100,
			CORSAllowOrigin:   "*",
		},
		Upstream: Upstream{
			Enabled:              false,
			BaseURL:              "https://www.alphavantage.co",
			DailyLimit:           20,
			MaxRequestsPerMinute: 5,
			TimeoutSec:           5,
			Timezone:             "UTC",
		},
		Cache: Cache{
			TTLSeconds: 30 * 60,
			MaxItems:   10000,
		},
		Log: Log{Level: "info", JSON: true},
	}
}

// Load reads config from path. If path is empty, config.json, config.yaml
// and config.yml are tried in that order; a missing file yields defaults.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
// A .env file in the working directory is loaded first, then environment
// variables override select fields.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		for _, candidate := range []string{"config.json", "config.yaml", "config.yml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decode(path, b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
	}
	if v, ok := os.LookupEnv("LEGACY_PREFIX"); ok { cfg.Server.LegacyPrefix = v }
	if v := os.Getenv("MAX_BATCH_SYMBOLS"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.MaxBatchSymbols = x }
	}
	if v := os.Getenv("CORS_ALLOW_ORIGIN"); v != "" { cfg.Server.CORSAllowOrigin = v }

	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" { cfg.Upstream.APIKey = v }
	if v := os.Getenv("ALPHA_VANTAGE_BASE_URL"); v != "" { cfg.Upstream.BaseURL = v }
	if v := os.Getenv("QUOTES_USE_UPSTREAM"); v != "" {
		if b, ok := parseBool(v); ok { cfg.Upstream.Enabled = b }
	}
	if v := os.Getenv("UPSTREAM_DAILY_LIMIT"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Upstream.DailyLimit = x }
	}
	if v := os.Getenv("UPSTREAM_MAX_RPM"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Upstream.MaxRequestsPerMinute = x }
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT_SEC"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Upstream.TimeoutSec = x }
	}
	if v := os.Getenv("UPSTREAM_TIMEZONE"); v != "" { cfg.Upstream.Timezone = v }

	if v := os.Getenv("CACHE_TTL_SEC"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Cache.TTLSeconds = x }
	}
	if v := os.Getenv("CACHE_MAX_ITEMS"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Cache.MaxItems = x }
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = v }
	if v := os.Getenv("LOG_JSON"); v != "" {
		if b, ok := parseBool(v); ok { cfg.Log.JSON = b }
	}
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y":
		return true, true
	case "0", "false", "no", "n":
		return false, true
	}
	return false, false
}
