// Package config loads service settings from an optional YAML file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable holding an optional YAML config path.
const FileEnv = "RPNCALC_CONFIG"

type Config struct {
	HTTPAddr            string        `yaml:"http_addr"`
	ServiceName         string        `yaml:"service_name"`
	TracesEnabled       bool          `yaml:"traces_enabled"`
	MetricsEnabled      bool          `yaml:"metrics_enabled"`
	LogsEnabled         bool          `yaml:"logs_enabled"`
	ShutdownTimeout     time.Duration `yaml:"shutdown_timeout"`
	MaxExpressionLength int           `yaml:"max_expression_length"`
}

func Default() Config {
	return Config{
		HTTPAddr:            ":8080",
		ServiceName:         "rpn-calculator",
		TracesEnabled:       true,
		MetricsEnabled:      true,
		LogsEnabled:         false,
		ShutdownTimeout:     5 * time.Second,
		MaxExpressionLength: 1024,
	}
}

// Load starts from Default, applies the file named by RPNCALC_CONFIG if set,
// then environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		c.HTTPAddr = v
	}
	if v, ok := lookup("OTEL_SERVICE_NAME"); ok && v != "" {
		c.ServiceName = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"OTEL_TRACES_ENABLED", &c.TracesEnabled},
		{"OTEL_METRICS_ENABLED", &c.MetricsEnabled},
		{"OTEL_LOGS_ENABLED", &c.LogsEnabled},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}

	if v, ok := lookup("MAX_EXPRESSION_LENGTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_EXPRESSION_LENGTH: %w", err)
		}
		c.MaxExpressionLength = n
	}

	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr must not be empty"))
	}
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service_name must not be empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	if c.MaxExpressionLength < 0 {
		errs = append(errs, errors.New("max_expression_length must not be negative"))
	}
	return errors.Join(errs...)
}
