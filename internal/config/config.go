// Package config loads process settings from KOPYE_* environment variables.
// Command-line flags override these values.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable.
const Prefix = "KOPYE"

// StoreNone disables answer persistence.
const StoreNone = "none"

// Config holds all process configuration.
type Config struct {
	Debug          bool   `envconfig:"DEBUG" default:"false"`
	TemplateSuffix string `envconfig:"TEMPLATE_SUFFIX" default:".tera"`
	AssumeYes      bool   `envconfig:"ASSUME_YES" default:"false"`
	NoColor        bool   `envconfig:"NO_COLOR" default:"false"`
	MetricsFile    string `envconfig:"METRICS_FILE"`

	Answers AnswersConfig
}

// AnswersConfig selects and protects the answer store. Nested under the ANSWERS key,
// so Store reads KOPYE_ANSWERS_STORE.
type AnswersConfig struct {
	// Store is a directory, a redis:// URL, or "none".
	Store string `envconfig:"STORE" default:".kopye/answers"`
	// Key is a base64 AES-256 key; when set, stored answers are encrypted.
	Key string `envconfig:"KEY"`
	// FallbackKeys still decrypt records written before a key rotation.
	FallbackKeys []string `envconfig:"FALLBACK_KEYS"`
	// Redact lists question id patterns never written to the store.
	Redact []string `envconfig:"REDACT"`
	// TTL expires redis records; zero keeps them.
	TTL time.Duration `envconfig:"TTL" default:"0s"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when the environment is empty.
func Default() *Config {
	return &Config{
		TemplateSuffix: ".tera",
		Answers: AnswersConfig{
			Store: ".kopye/answers",
		},
	}
}
