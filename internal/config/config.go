// Package config provides Viper-based configuration loading for the data tools.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultDataPath is the document every tool reads when nothing overrides it.
const DefaultDataPath = "data/v2_data.json"

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "ABILITYDATA"

// DataConfig describes where the ability document comes from.
type DataConfig struct {
	// Path is the local JSON file read when URL is empty.
	Path string `mapstructure:"path"`
	// URL, when non-empty, is fetched over HTTP instead of reading Path.
	URL string `mapstructure:"url"`
	// FetchTimeout bounds the whole HTTP fetch.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// Remote reports whether the document should be fetched over HTTP.
func (d DataConfig) Remote() bool {
	return d.URL != ""
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ReportConfig controls how results are written to stdout.
type ReportConfig struct {
	// Format is "text", "yaml" or "json". Only the analyzers honour it.
	Format string `mapstructure:"format"`
	// Color is "auto", "always" or "never".
	Color string `mapstructure:"color"`
}

// Config is the top-level application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Logging LoggingConfig `mapstructure:"logging"`
	Report  ReportConfig  `mapstructure:"report"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateData(c.Data); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateReport(c.Report); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateData(d DataConfig) error {
	var errs []string
	if d.Path == "" && d.URL == "" {
		errs = append(errs, "one of data.path or data.url must be set")
	}
	if d.URL != "" {
		u, err := url.Parse(d.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("data.url must be an absolute http(s) URL, got %q", d.URL))
		}
	}
	if d.FetchTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("data.fetch_timeout must be positive, got %s", d.FetchTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateReport(r ReportConfig) error {
	var errs []string
	validFormats := map[string]bool{"text": true, "yaml": true, "json": true}
	if !validFormats[r.Format] {
		errs = append(errs, fmt.Sprintf("report.format must be one of [text, yaml, json], got %q", r.Format))
	}
	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[r.Color] {
		errs = append(errs, fmt.Sprintf("report.color must be one of [auto, always, never], got %q", r.Color))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// New returns a Viper instance carrying defaults and environment overrides,
// with the optional YAML file at path merged in.
//
// Precondition: path is empty or names a readable configuration file.
// Postcondition: Returns a configured Viper or a non-nil error.
func New(path string) (*viper.Viper, error) {
	v := viper.New()

	// Environment variable overrides with ABILITYDATA_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return v, nil
}

// Load reads configuration from the optional file at path, applies environment
// variable overrides, and validates the result.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v, err := New(path)
	if err != nil {
		return Config{}, err
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", DefaultDataPath)
	v.SetDefault("data.url", "")
	v.SetDefault("data.fetch_timeout", "30s")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("report.format", "text")
	v.SetDefault("report.color", "auto")
}
