package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	DataDir     string
	ClimateFile string
	ReportFile  string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// HTTPAddr enables the health/metrics server when non-empty.
	HTTPAddr string

	// KafkaBrokers enables publishing assessments when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// MetricsTextfile, when set, receives a Prometheus text dump on exit.
	MetricsTextfile string
}

// HTTPEnabled reports whether the health/metrics server should run.
func (c *Config) HTTPEnabled() bool {
	return c.HTTPAddr != ""
}

// KafkaEnabled reports whether assessments are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	dataDir := sharedcfg.EnvOrDefault("DATA_DIR", ".")

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		DataDir:         dataDir,
		ClimateFile:     resolvePath(dataDir, sharedcfg.EnvOrDefault("CLIMATE_FILE", "datos_del_clima.txt")),
		ReportFile:      resolvePath(dataDir, sharedcfg.EnvOrDefault("REPORT_FILE", "reporte_contaminacion.txt")),
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		ShutdownTimeout: shutdownTimeout,
		HTTPAddr:        strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "air-quality-assessments"),
		MetricsTextfile: strings.TrimSpace(os.Getenv("METRICS_TEXTFILE")),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (allowed: json, text)", cfg.LogFormat)
	}
	if info, err := os.Stat(cfg.DataDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("DATA_DIR %q is not a readable directory", cfg.DataDir)
	}
	if cfg.KafkaEnabled() && strings.TrimSpace(cfg.KafkaTopic) == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// resolvePath anchors relative file names in the data directory.
func resolvePath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
