package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr = ":8080"
	defaultAPIToken   = "dev-token"
	defaultStorage    = "postgres"
)

// Config holds everything the server needs to start.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	APIToken   string `yaml:"api_token"`

	// Storage selects the repository backend: "postgres" or "memory".
	Storage     string `yaml:"storage"`
	DatabaseURL string `yaml:"database_url"`

	// SeedSampleData populates an empty store with a demo portfolio at boot.
	SeedSampleData bool `yaml:"seed_sample_data"`
}

// Load resolves configuration from, in order of precedence: a yaml file
// named by the -config flag, environment variables, and built-in defaults.
func Load() (*Config, error) {
	path := flag.String("config", "", "path to yaml config")
	flag.Parse()

	cfg := fromEnv()
	if *path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func fromEnv() *Config {
	cfg := &Config{
		ListenAddr:     envOr("LISTEN_ADDR", defaultListenAddr),
		APIToken:       envOr("API_TOKEN", defaultAPIToken),
		Storage:        envOr("STORAGE", defaultStorage),
		DatabaseURL:    os.Getenv("DB_CONN_STR"),
		SeedSampleData: envBool("SEED_SAMPLE_DATA"),
	}

	if cfg.DatabaseURL == "" {
		// Build the conn string from individual vars (Docker friendly).
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_PORT", "5432"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", "postgres"),
			envOr("DB_NAME", "moneymash"),
		)
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
