// Package config loads settings for hosts that run cmdlets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the host configuration.
//
// Values are named string registrations offered to the resolver, e.g.
// "greeting.prefix" -> "Hello".
type Config struct {
	Env      string            `yaml:"env"`
	LogLevel string            `yaml:"log_level"`
	Values   map[string]string `yaml:"values"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Env: "local", LogLevel: "info", Values: map[string]string{}}
}

// Load reads the YAML file at path (skipped when path is empty) over Default,
// then applies CMDLETDI_ENV and CMDLETDI_LOG_LEVEL overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, err
		}
	}

	cfg.Env = getenv("CMDLETDI_ENV", cfg.Env)
	cfg.LogLevel = getenv("CMDLETDI_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Values == nil {
		cfg.Values = map[string]string{}
	}
	return cfg, nil
}

// Validate checks required fields.
func (c Config) Validate() error {
	if c.Env == "" {
		return errors.New("config: env must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
