// Package config loads loader settings from YAML files and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/rowseg/errs"
	"github.com/arloliu/rowseg/format"
	"github.com/arloliu/rowseg/logging"
	"github.com/arloliu/rowseg/table"
)

// EnvPrefix prefixes the environment variables that override file settings.
const EnvPrefix = "ROWSEG_"

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the loader settings.
type Config struct {
	// Mode is the expected payload representation: text, bytes or stream.
	// Empty accepts any representation.
	Mode string `yaml:"mode" json:"mode"`
	// Compression applied to binary payloads: none, zstd, s2 or lz4.
	Compression  string `yaml:"compression" json:"compression"`
	KeepComments bool   `yaml:"keep_comments" json:"keep_comments"`
	Concurrency  int    `yaml:"concurrency" json:"concurrency"`
	LogLevel     string `yaml:"log_level" json:"log_level"`
	LogFormat    string `yaml:"log_format" json:"log_format"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()

	return cfg
}

// Load reads a YAML file, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML, applies environment overrides and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv returns the default settings with ROWSEG_* overrides applied.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := cfg.finish(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) finish() error {
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	cfg.Normalize()

	return cfg.Validate()
}

// ApplyEnv overrides settings from ROWSEG_* environment variables.
// An unparsable numeric or boolean value is an error.
func (cfg *Config) ApplyEnv() error {
	overrideEnvString(&cfg.Mode, "MODE")
	overrideEnvString(&cfg.Compression, "COMPRESSION")
	overrideEnvString(&cfg.LogLevel, "LOG_LEVEL")
	overrideEnvString(&cfg.LogFormat, "LOG_FORMAT")

	return errors.Join(
		overrideEnvBool(&cfg.KeepComments, "KEEP_COMMENTS"),
		overrideEnvInt(&cfg.Concurrency, "CONCURRENCY"),
	)
}

// Normalize fills unset fields with defaults.
func (cfg *Config) Normalize() {
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.Compression = strings.ToLower(strings.TrimSpace(cfg.Compression))
	if cfg.Compression == "" {
		cfg.Compression = "none"
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = table.DefaultConcurrency
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatText
	}
}

// Validate checks every setting.
func (cfg *Config) Validate() error {
	if cfg.Mode != "" {
		if _, err := format.ParsePayloadType(cfg.Mode); err != nil {
			return err
		}
	}
	if _, err := format.ParseCompressionType(cfg.Compression); err != nil {
		return err
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidConcurrency, cfg.Concurrency)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		return fmt.Errorf("config: unknown log format %q", cfg.LogFormat)
	}

	return nil
}

// Logger builds the logger described by the log settings, writing to w.
func (cfg *Config) Logger(w io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.LogFormat == LogFormatJSON {
		return logging.NewJSON(w, level), nil
	}

	return logging.NewText(w, level), nil
}

// Options converts the settings into loader options.
func (cfg *Config) Options() ([]table.LoaderOption, error) {
	comp, err := format.ParseCompressionType(cfg.Compression)
	if err != nil {
		return nil, err
	}

	opts := []table.LoaderOption{
		table.WithCompression(comp),
		table.WithKeepComments(cfg.KeepComments),
	}

	if cfg.Mode != "" {
		mode, err := format.ParsePayloadType(cfg.Mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, table.WithMode(mode))
	}

	if cfg.Concurrency > 0 {
		opts = append(opts, table.WithConcurrency(cfg.Concurrency))
	}

	return opts, nil
}

func overrideEnvString(target *string, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		*target = v
	}
}

func overrideEnvInt(target *int, key string) error {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
	}
	*target = n

	return nil
}

func overrideEnvBool(target *bool, key string) error {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return nil
	}

	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
	}
	*target = b

	return nil
}
