package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Config holds all run settings, populated from environment variables.
// The input CSV path is deliberately not here: it is the one positional
// command-line argument.
type Config struct {
	OutputDir string
	LogLevel  string
	LogFormat string

	// Optional Kafka summary sink configuration.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	cfg := &Config{
		OutputDir:  envOrDefault("OUTPUT_DIR", "."),
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
		LogFormat:  envOrDefault("LOG_FORMAT", "json"),
		KafkaTopic: envOrDefault("KAFKA_TOPIC", "station-doy-summaries"),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	// The summary sink is enabled by setting KAFKA_BROKERS; KAFKA_ENABLED
	// overrides in either direction.
	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	cfg.KafkaEnabled = len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		cfg.KafkaEnabled = v == "true"
	}
	if cfg.KafkaEnabled {
		if len(brokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when the summary sink is enabled")
		}
		cfg.KafkaBrokers = brokers
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
