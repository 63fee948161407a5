// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv("config.yaml")
//	matcherCfg, err := cfg.MatcherConfig()
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/attachmatch/attachment-match-backend/internal/domain/matcher"
	"github.com/attachmatch/attachment-match-backend/internal/domain/names"
	"github.com/attachmatch/attachment-match-backend/internal/domain/reference"
)

// Config represents the entire application configuration
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Names    NamesConfig    `yaml:"names"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// MatchingConfig holds the scoring weights, tolerances and threshold
type MatchingConfig struct {
	MinConfidence     int    `yaml:"min_confidence"`
	DateToleranceDays int    `yaml:"date_tolerance_days"`
	AmountTolerance   string `yaml:"amount_tolerance"`
	AmountPoints      int    `yaml:"amount_points"`
	DatePoints        int    `yaml:"date_points"`
	FinnishReferences *bool  `yaml:"finnish_references"` // nil means enabled
}

// NamesConfig holds the name-normalization token lists
type NamesConfig struct {
	LegalSuffixes      []string `yaml:"legal_suffixes"`
	RegionalQualifiers []string `yaml:"regional_qualifiers"`
	OwnNames           []string `yaml:"own_names"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the documented default configuration.
func Default() *Config {
	defaults := matcher.DefaultConfig()
	nameDefaults := names.DefaultConfig()
	return &Config{
		Matching: MatchingConfig{
			MinConfidence:     defaults.MinConfidence,
			DateToleranceDays: defaults.DateToleranceDays,
			AmountTolerance:   defaults.AmountTolerance.String(),
			AmountPoints:      defaults.AmountPoints,
			DatePoints:        defaults.DatePoints,
		},
		Names: NamesConfig{
			LegalSuffixes:      nameDefaults.LegalSuffixes,
			RegionalQualifiers: nameDefaults.RegionalQualifiers,
			OwnNames:           defaults.OwnNames,
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("MATCH_DB_PATH", "matches.db"),
		},
		Server: ServerConfig{
			Port:           getEnvInt("PORT", 8080),
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// Load reads and parses the config file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${MATCH_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOrEnv loads the config file if present, otherwise falls back to the
// env-seeded defaults.
func LoadOrEnv(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return Default()
}

// MatcherConfig translates the file representation into a validated matcher
// configuration. Invalid values (unparseable or negative tolerance, a
// threshold above the maximum attainable score) fail here, before any
// matching runs.
func (c *Config) MatcherConfig() (matcher.Config, error) {
	tolerance, err := decimal.NewFromString(c.Matching.AmountTolerance)
	if err != nil {
		return matcher.Config{}, fmt.Errorf("invalid amount_tolerance %q: %w", c.Matching.AmountTolerance, err)
	}

	cfg := matcher.Config{
		MinConfidence:     c.Matching.MinConfidence,
		DateToleranceDays: c.Matching.DateToleranceDays,
		AmountTolerance:   tolerance,
		AmountPoints:      c.Matching.AmountPoints,
		DatePoints:        c.Matching.DatePoints,
		Reference:         reference.Normalizer{FinnishPrefix: c.Matching.FinnishReferences == nil || *c.Matching.FinnishReferences},
		Names: names.Config{
			LegalSuffixes:      c.Names.LegalSuffixes,
			RegionalQualifiers: c.Names.RegionalQualifiers,
		},
		OwnNames: c.Names.OwnNames,
	}
	if err := cfg.Validate(); err != nil {
		return matcher.Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
