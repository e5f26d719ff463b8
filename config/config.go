package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the origin of the remote pets API. Every endpoint
// (listings, search, auth, profile) lives under this origin.
const DefaultBaseURL = "https://pets.сделай.site"

// Config holds all client settings. Every field has a usable default so
// running without a config file just works.
type Config struct {
	API    APIConfig    `yaml:"api"`
	State  StateConfig  `yaml:"state"`
	Cache  CacheConfig  `yaml:"cache"`
	Search SearchConfig `yaml:"search"`
}

// APIConfig configures the remote pets API connection.
type APIConfig struct {
	BaseURL          string `yaml:"base_url"`
	PlaceholderImage string `yaml:"placeholder_image"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
}

// StateConfig configures local durable state (session persistence).
type StateConfig struct {
	DB            string `yaml:"db"`
	MigrationsDir string `yaml:"migrations_dir"`
}

// CacheConfig configures the optional search-result cache.
type CacheConfig struct {
	Type          string `yaml:"type"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// SearchConfig tunes the live-search behavior.
type SearchConfig struct {
	DebounceMs  int `yaml:"debounce_ms"`
	MinQueryLen int `yaml:"min_query_len"`
	PageSize    int `yaml:"page_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:          DefaultBaseURL,
			PlaceholderImage: "https://placebear.com/400/300",
			TimeoutSeconds:   15,
		},
		State: StateConfig{
			DB:            "./getpetback.db",
			MigrationsDir: "./database/migrations",
		},
		Cache: CacheConfig{
			Type:      "redis",
			RedisAddr: "localhost:6379",
		},
		Search: SearchConfig{
			DebounceMs:  1000,
			MinQueryLen: 4,
			PageSize:    10,
		},
	}
}

// Load reads the config file at path, layering it over the defaults.
// A missing file is not an error; a malformed one is.
// PETBACK_BASE_URL overrides the API origin last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		} else if !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if v := os.Getenv("PETBACK_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}

	// Backfill anything the file blanked out.
	def := Default()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.PlaceholderImage == "" {
		cfg.API.PlaceholderImage = def.API.PlaceholderImage
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if cfg.State.DB == "" {
		cfg.State.DB = def.State.DB
	}
	if cfg.State.MigrationsDir == "" {
		cfg.State.MigrationsDir = def.State.MigrationsDir
	}
	if cfg.Search.DebounceMs <= 0 {
		cfg.Search.DebounceMs = def.Search.DebounceMs
	}
	if cfg.Search.MinQueryLen <= 0 {
		cfg.Search.MinQueryLen = def.Search.MinQueryLen
	}
	if cfg.Search.PageSize <= 0 {
		cfg.Search.PageSize = def.Search.PageSize
	}

	return cfg, nil
}

// HTTPTimeout returns the API timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Debounce returns the live-search idle delay as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}
