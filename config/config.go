// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (PITIA_ prefix)
//  2. Config file (~/.pitia/config.yaml)
//  3. Default values
//
// Error handling uses sentinel errors checked with errors.Is(), wrapped
// with context via fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidThreshold indicates a similarity threshold outside (0, 1].
	ErrInvalidThreshold = errors.New("invalid similarity threshold")

	// ErrInvalidPoolSize indicates a non-positive worker pool size.
	ErrInvalidPoolSize = errors.New("invalid pool size")

	// ErrInvalidTimeout indicates a non-positive fetch timeout.
	ErrInvalidTimeout = errors.New("invalid fetch timeout")

	// ErrInvalidTrustLevel indicates a trust level outside the 0-3 range.
	ErrInvalidTrustLevel = errors.New("invalid trust level")

	// ErrInvalidBatchSize indicates a non-positive fetch batch size.
	ErrInvalidBatchSize = errors.New("invalid fetch batch size")
)

// Config stores application configuration.
type Config struct {
	// Storage
	DataDir string `mapstructure:"data_dir"`

	// Similarity gates
	CosineThreshold  float64 `mapstructure:"cosine_threshold"`
	OverlapThreshold float64 `mapstructure:"overlap_threshold"`

	// Retrieval pipeline
	PoolSize           int     `mapstructure:"pool_size"`
	MaxFetchBatch      int     `mapstructure:"max_fetch_batch"`
	EarlyExitTrust     int     `mapstructure:"early_exit_trust"`
	EarlyExitRelevance float64 `mapstructure:"early_exit_relevance"`

	// Fetching
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	MaxContentLen int           `mapstructure:"max_content_len"`
	MaxPreviewLen int           `mapstructure:"max_preview_len"`

	// HTTP identity
	UserAgent      string `mapstructure:"user_agent"`
	SearchLanguage string `mapstructure:"search_language"`

	// Trusted domains, domain suffix to trust level (0-3).
	TrustedDomains map[string]int `mapstructure:"trusted_domains"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".pitia")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetEnvPrefix("PITIA")
	v.AutomaticEnv()

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// Default builds a Config with every knob at its default value, without
// touching the filesystem. Used by tests and as a fallback.
func Default() *Config {
	v := viper.New()
	setDefaults(v, "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("data_dir", filepath.Join(configDir, "db"))

	v.SetDefault("cosine_threshold", 0.65)
	v.SetDefault("overlap_threshold", 0.4)

	v.SetDefault("pool_size", 5)
	v.SetDefault("max_fetch_batch", 5)
	v.SetDefault("early_exit_trust", 3)
	v.SetDefault("early_exit_relevance", 0.5)

	v.SetDefault("fetch_timeout", 10*time.Second)
	v.SetDefault("max_content_len", 5000)
	v.SetDefault("max_preview_len", 500)

	v.SetDefault("user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	v.SetDefault("search_language", "pt-BR")

	v.SetDefault("trusted_domains", map[string]int{
		"wikipedia.org":          2,
		"gov.br":                 3,
		"bbc.com":                2,
		"nationalgeographic.com": 2,
		"uol.com.br":             1,
		"terra.com.br":           1,
		"edu.br":                 3,
	})

	v.SetDefault("log_level", "info")
}

// Validate performs range checks on every knob (fail-fast).
func (c *Config) Validate() error {
	if c.CosineThreshold <= 0 || c.CosineThreshold > 1 {
		return fmt.Errorf("%w: cosine_threshold=%v", ErrInvalidThreshold, c.CosineThreshold)
	}
	if c.OverlapThreshold <= 0 || c.OverlapThreshold > 1 {
		return fmt.Errorf("%w: overlap_threshold=%v", ErrInvalidThreshold, c.OverlapThreshold)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: pool_size=%d", ErrInvalidPoolSize, c.PoolSize)
	}
	if c.MaxFetchBatch < 1 {
		return fmt.Errorf("%w: max_fetch_batch=%d", ErrInvalidBatchSize, c.MaxFetchBatch)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch_timeout=%v", ErrInvalidTimeout, c.FetchTimeout)
	}
	if c.EarlyExitTrust < 0 || c.EarlyExitTrust > 3 {
		return fmt.Errorf("%w: early_exit_trust=%d", ErrInvalidTrustLevel, c.EarlyExitTrust)
	}
	if c.EarlyExitRelevance < 0 || c.EarlyExitRelevance > 1 {
		return fmt.Errorf("%w: early_exit_relevance=%v", ErrInvalidThreshold, c.EarlyExitRelevance)
	}
	for domain, level := range c.TrustedDomains {
		if level < 0 || level > 3 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidTrustLevel, domain, level)
		}
	}
	return nil
}
