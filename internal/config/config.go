package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/venus-data/internal/domain"
)

// Config holds all generator settings, populated from environment variables.
type Config struct {
	OutputDir    string
	StartYear    int
	EndYear      int
	Seed         uint64
	SeedSet      bool
	ProfilesFile string
	ChartEnabled bool
	ExtendedCSV  bool

	HTTPAddr         string
	DatasetCacheSize int
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	// Optional sinks. Empty brokers or URL disables the sink.
	KafkaBrokers []string
	KafkaTopic   string

	InfluxURL    string
	InfluxToken  string
	InfluxOrg    string
	InfluxBucket string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	startYear, err := parseInt("VENUS_START_YEAR", domain.DefaultStartYear)
	if err != nil {
		return nil, err
	}
	endYear, err := parseInt("VENUS_END_YEAR", domain.DefaultEndYear)
	if err != nil {
		return nil, err
	}

	chartEnabled, err := parseBool("VENUS_CHART_ENABLED", true)
	if err != nil {
		return nil, err
	}
	extended, err := parseBool("VENUS_EXTENDED_CSV", false)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("VENUS_DATASET_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OutputDir:    sharedcfg.EnvOrDefault("VENUS_OUTPUT_DIR", "."),
		StartYear:    startYear,
		EndYear:      endYear,
		ProfilesFile: os.Getenv("VENUS_PROFILES_FILE"),
		ChartEnabled: chartEnabled,
		ExtendedCSV:  extended,

		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		DatasetCacheSize: cacheSize,
		LogLevel:         strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		ShutdownTimeout:  shutdownTimeout,

		KafkaTopic: sharedcfg.EnvOrDefault("KAFKA_TOPIC", "venus-series"),

		InfluxURL:    os.Getenv("INFLUX_URL"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    sharedcfg.EnvOrDefault("INFLUX_ORG", "venus"),
		InfluxBucket: sharedcfg.EnvOrDefault("INFLUX_BUCKET", "venus"),
	}

	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(raw)
	}

	if s := os.Getenv("VENUS_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errors.New("invalid VENUS_SEED")
		}
		cfg.Seed, cfg.SeedSet = seed, true
	}

	if err := cfg.YearRange().Validate(); err != nil {
		return nil, fmt.Errorf("VENUS_START_YEAR/VENUS_END_YEAR: %w", err)
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("VENUS_OUTPUT_DIR is required")
	}
	if cfg.DatasetCacheSize < 1 {
		return nil, errors.New("VENUS_DATASET_CACHE_SIZE must be positive")
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
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.InfluxEnabled() && (cfg.InfluxOrg == "" || cfg.InfluxBucket == "") {
		return nil, errors.New("INFLUX_ORG and INFLUX_BUCKET are required when INFLUX_URL is set")
	}

	return cfg, nil
}

// YearRange returns the configured inclusive range.
func (c *Config) YearRange() domain.YearRange {
	return domain.YearRange{Start: c.StartYear, End: c.EndYear}
}

// KafkaEnabled reports whether the Kafka sink should run.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// InfluxEnabled reports whether the InfluxDB sink should run.
func (c *Config) InfluxEnabled() bool { return c.InfluxURL != "" }

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return b, nil
}
