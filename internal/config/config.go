package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the dsfetch CLI.
type Config struct {
	RootDir  string        `yaml:"root_dir"`
	Progress bool          `yaml:"progress"`
	Budgets  BudgetConfig  `yaml:"budgets"`
	Bucket   string        `yaml:"bucket"`
	Prefix   string        `yaml:"prefix"`
	Retry    RetryConfig   `yaml:"retry"`
}

// BudgetConfig holds the per-dataset retention budgets.
type BudgetConfig struct {
	Montgomery int `yaml:"montgomery"`
	Omniglot   int `yaml:"omniglot"`
}

// RetryConfig defines download retry behavior.
type RetryConfig struct {
	Attempts   int           `yaml:"attempts"`
	Backoff    time.Duration `yaml:"backoff"`
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Budgets: BudgetConfig{
			Montgomery: 20,
			Omniglot:   3,
		},
		Retry: RetryConfig{
			Attempts:   5,
			Backoff:    time.Second,
			MaxBackoff: 30 * time.Second,
		},
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	RootDir  string          `yaml:"root_dir"`
	Progress bool            `yaml:"progress"`
	Budgets  BudgetConfig    `yaml:"budgets"`
	Bucket   string          `yaml:"bucket"`
	Prefix   string          `yaml:"prefix"`
	Retry    yamlRetryConfig `yaml:"retry"`
}

type yamlRetryConfig struct {
	Attempts   int    `yaml:"attempts"`
	Backoff    string `yaml:"backoff"`
	MaxBackoff string `yaml:"max_backoff"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.RootDir != "" {
		cfg.RootDir = yc.RootDir
	}
	cfg.Progress = yc.Progress
	if yc.Budgets.Montgomery != 0 {
		cfg.Budgets.Montgomery = yc.Budgets.Montgomery
	}
	if yc.Budgets.Omniglot != 0 {
		cfg.Budgets.Omniglot = yc.Budgets.Omniglot
	}
	if yc.Bucket != "" {
		cfg.Bucket = yc.Bucket
	}
	if yc.Prefix != "" {
		cfg.Prefix = yc.Prefix
	}
	if yc.Retry.Attempts != 0 {
		cfg.Retry.Attempts = yc.Retry.Attempts
	}
	if yc.Retry.Backoff != "" {
		d, err := time.ParseDuration(yc.Retry.Backoff)
		if err != nil {
			return Config{}, fmt.Errorf("parse retry.backoff: %w", err)
		}
		cfg.Retry.Backoff = d
	}
	if yc.Retry.MaxBackoff != "" {
		d, err := time.ParseDuration(yc.Retry.MaxBackoff)
		if err != nil {
			return Config{}, fmt.Errorf("parse retry.max_backoff: %w", err)
		}
		cfg.Retry.MaxBackoff = d
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the DSFETCH_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("DSFETCH_ROOT_DIR"); v != "" {
		c.RootDir = v
	}
	if v := os.Getenv("DSFETCH_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("DSFETCH_BUDGET_MONTGOMERY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_BUDGET_MONTGOMERY: %w", err)
		}
		c.Budgets.Montgomery = n
	}
	if v := os.Getenv("DSFETCH_BUDGET_OMNIGLOT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_BUDGET_OMNIGLOT: %w", err)
		}
		c.Budgets.Omniglot = n
	}
	if v := os.Getenv("DSFETCH_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("DSFETCH_PREFIX"); v != "" {
		c.Prefix = v
	}
	if v := os.Getenv("DSFETCH_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_RETRY_ATTEMPTS: %w", err)
		}
		c.Retry.Attempts = n
	}
	if v := os.Getenv("DSFETCH_RETRY_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_RETRY_BACKOFF: %w", err)
		}
		c.Retry.Backoff = d
	}
	if v := os.Getenv("DSFETCH_RETRY_MAX_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_RETRY_MAX_BACKOFF: %w", err)
		}
		c.Retry.MaxBackoff = d
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Budgets.Montgomery <= 0 {
		return errors.New("config: budgets.montgomery must be positive")
	}
	if c.Budgets.Omniglot <= 0 {
		return errors.New("config: budgets.omniglot must be positive")
	}
	if c.Retry.Attempts < 0 {
		return errors.New("config: retry.attempts must not be negative")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.RootDir != "" {
		c.RootDir = override.RootDir
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.Budgets.Montgomery != 0 {
		c.Budgets.Montgomery = override.Budgets.Montgomery
	}
	if override.Budgets.Omniglot != 0 {
		c.Budgets.Omniglot = override.Budgets.Omniglot
	}
	if override.Bucket != "" {
		c.Bucket = override.Bucket
	}
	if override.Prefix != "" {
		c.Prefix = override.Prefix
	}
	if override.Retry.Attempts != 0 {
		c.Retry.Attempts = override.Retry.Attempts
	}
	if override.Retry.Backoff != 0 {
		c.Retry.Backoff = override.Retry.Backoff
	}
	if override.Retry.MaxBackoff != 0 {
		c.Retry.MaxBackoff = override.Retry.MaxBackoff
	}
	return c
}
