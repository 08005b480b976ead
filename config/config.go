// Package config loads spreadview's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
)

type (
	RepositoryConfig struct {
		Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
		UserAgent string        `yaml:"user_agent"`
	}

	ServerConfig struct {
		Addr         string        `yaml:"addr" validate:"required"`
		ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gte=0"`
		WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`
	}

	ExportConfig struct {
		OutputDir string `yaml:"output_dir"`
		Format    string `yaml:"format" validate:"omitempty,oneof=markdown json pdf"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Repository RepositoryConfig `yaml:"repository"`
		Server     ServerConfig     `yaml:"server"`
		Export     ExportConfig     `yaml:"export"`
		Logging    LoggingConfig    `yaml:"logging"`
	}
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: 1,
		Repository: RepositoryConfig{
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8088",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Export: ExportConfig{
			Format: "markdown",
		},
		Logging: LoggingConfig{
			Level: "normal",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Unmarshal decodes YAML (or JSON) data on top of v and validates the result.
// With strict set, keys that do not map onto a field are an error.
func Unmarshal(data []byte, v any, strict bool) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return Validate(v)
}

// Validate checks v against its validate struct tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("configuration is not valid: %w", err)
	}
	return nil
}

// LoadConfiguration reads the configuration from the file at the given path
// and superimposes its values on top of the defaults. An empty path yields
// the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := Unmarshal(data, cfg, true); err != nil {
		return nil, err
	}
	return cfg, nil
}
