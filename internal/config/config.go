package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/couchcryptid/sec-shares-service/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

const (
	defaultSECBaseURL   = "https://data.sec.gov"
	defaultSECUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// LoadDotEnv copies KEY=value pairs from the named files, or ".env" when none
// are named, into the process environment. Missing files are skipped and
// variables that are already set keep their value.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// SEC API settings.
	SECBaseURL   string
	SECUserAgent string
	DefaultCIK   string

	DisplayLocale string

	// Result publishing. Empty KafkaBrokers disables it.
	KafkaBrokers      []string
	KafkaResultsTopic string
}

// PublishEnabled reports whether share ranges are written to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,
		SECBaseURL:        sharedcfg.EnvOrDefault("SEC_BASE_URL", defaultSECBaseURL),
		SECUserAgent:      sharedcfg.EnvOrDefault("SEC_USER_AGENT", defaultSECUserAgent),
		DefaultCIK:        sharedcfg.EnvOrDefault("DEFAULT_CIK", domain.DefaultCIK),
		DisplayLocale:     sharedcfg.EnvOrDefault("DISPLAY_LOCALE", "en-US"),
		KafkaBrokers:      brokers,
		KafkaResultsTopic: sharedcfg.EnvOrDefault("KAFKA_RESULTS_TOPIC", "share-ranges"),
	}

	if u, err := url.Parse(cfg.SECBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("invalid SEC_BASE_URL")
	}
	if cfg.SECUserAgent == "" {
		return nil, errors.New("SEC_USER_AGENT is required")
	}
	if err := domain.ValidateCIK(cfg.DefaultCIK); err != nil {
		return nil, errors.New("invalid DEFAULT_CIK, must be a 10-digit number")
	}
	if _, err := language.Parse(cfg.DisplayLocale); err != nil {
		return nil, errors.New("invalid DISPLAY_LOCALE")
	}
	if cfg.PublishEnabled() && cfg.KafkaResultsTopic == "" {
		return nil, errors.New("KAFKA_RESULTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}
