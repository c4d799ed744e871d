package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the analytics server
type Config struct {
	AppName      string   `yaml:"app_name"`
	HTTPAddr     string   `yaml:"http_addr"`
	DatabaseURL  string   `yaml:"database_url"`
	CORSOrigins  []string `yaml:"cors_origins"`
	SnapshotDays int      `yaml:"snapshot_days"`
}

// Default returns the configuration used when nothing is overridden.
// An empty DatabaseURL selects the in-memory store.
func Default() Config {
	return Config{
		AppName:      "varscope-backend",
		HTTPAddr:     ":8080",
		DatabaseURL:  "",
		CORSOrigins:  []string{"http://localhost:3000"},
		SnapshotDays: 5,
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence. An empty path
// skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.SnapshotDays <= 0 {
		return Config{}, fmt.Errorf("snapshot_days must be positive, got %d", cfg.SnapshotDays)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VARSCOPE_APP_NAME"); v != "" {
		cfg.AppName = v
	}
	if v := os.Getenv("VARSCOPE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("VARSCOPE_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("VARSCOPE_CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSOrigins = origins
	}
	if v := os.Getenv("VARSCOPE_SNAPSHOT_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.SnapshotDays = days
		}
	}
}
