package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const dateLayout = "2006-01-02"

// Config holds all archiver settings, populated from environment variables.
// It is not modified after Load returns.
type Config struct {
	StartDate  time.Time
	EndDate    time.Time
	Hour       string
	StationID  string
	Region     string
	OutputDir  string
	FilePrefix string
	StopMarker string

	BaseURL      string
	FetchTimeout time.Duration
	RequestDelay time.Duration

	LogLevel        string
	LogFormat       string
	HTTPAddr        string
	MetricsTextfile string
	ShutdownTimeout time.Duration

	// Optional Kafka fan-out of stored reports. Disabled when KafkaBrokers is empty.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	start, err := parseDate("START_DATE", "2026-01-22")
	if err != nil {
		return nil, err
	}
	end, err := parseDate("END_DATE", "2026-01-27")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	if fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT: must be positive")
	}

	requestDelay, err := parseDuration("REQUEST_DELAY", "0s")
	if err != nil {
		return nil, err
	}
	if requestDelay < 0 {
		return nil, errors.New("invalid REQUEST_DELAY: must not be negative")
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		StartDate:  start,
		EndDate:    end,
		Hour:       sharedcfg.EnvOrDefault("SOUNDING_HOUR", "12"),
		StationID:  sharedcfg.EnvOrDefault("STATION_ID", "15614"),
		Region:     sharedcfg.EnvOrDefault("REGION", "europe"),
		OutputDir:  sharedcfg.EnvOrDefault("OUTPUT_DIR", "wyoming"),
		FilePrefix: sharedcfg.EnvOrDefault("FILE_PREFIX", "wyoming"),
		StopMarker: sharedcfg.EnvOrDefault("STOP_MARKER", "Precipitable water [mm] for entire sounding"),

		BaseURL:      sharedcfg.EnvOrDefault("SOUNDING_BASE_URL", "https://weather.uwyo.edu/cgi-bin/sounding"),
		FetchTimeout: fetchTimeout,
		RequestDelay: requestDelay,

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "raw-soundings"),
	}

	if cfg.EndDate.Before(cfg.StartDate) {
		return nil, errors.New("END_DATE must not be before START_DATE")
	}
	if cfg.Hour != "00" && cfg.Hour != "12" {
		return nil, fmt.Errorf("invalid SOUNDING_HOUR %q: must be 00 or 12", cfg.Hour)
	}
	if !isDigits(cfg.StationID) {
		return nil, fmt.Errorf("invalid STATION_ID %q: must be numeric", cfg.StationID)
	}
	if strings.TrimSpace(cfg.StopMarker) == "" {
		return nil, errors.New("STOP_MARKER is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// KafkaEnabled reports whether stored reports should also be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseDate(key, def string) (time.Time, error) {
	v := sharedcfg.EnvOrDefault(key, def)
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", key, v)
	}
	return t, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	v := sharedcfg.EnvOrDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
