// Package config loads the calcx configuration file.
//
// Every field has a default, so a missing file or an empty document is a valid
// configuration. The display length limit is fixed and has no setting here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level configuration document.
type Config struct {
	Log     Log     `json:"log" yaml:"log"`
	Session Session `json:"session" yaml:"session"`
	Window  Window  `json:"window" yaml:"window"`
}

type Log struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text, json
}

// Session controls where saved calculator sessions live.
type Session struct {
	Dir    string `json:"dir" yaml:"dir"`
	Format string `json:"format" yaml:"format"` // yaml, json
}

type Window struct {
	Scale int    `json:"scale" yaml:"scale"`
	Title string `json:"title" yaml:"title"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	dir := ".calcx"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".calcx")
	}
	return Config{
		Log:     Log{Level: "info", Format: "text"},
		Session: Session{Dir: dir, Format: "yaml"},
		Window:  Window{Scale: 2, Title: "calcx"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("yaml decode: %w", err)
	}
	cfg.Session.Dir = expandHome(cfg.Session.Dir)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the configuration:
// - log level is one of debug, info, warn, error
// - log format is text or json
// - session dir is set and session format is yaml or json
// - window scale is between 1 and 8
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Session.Dir == "" {
		return fmt.Errorf("%w: session dir is required", ErrInvalidConfig)
	}
	switch c.Session.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("%w: session format %q", ErrInvalidConfig, c.Session.Format)
	}
	if c.Window.Scale < 1 || c.Window.Scale > 8 {
		return fmt.Errorf("%w: window scale %d out of range 1-8", ErrInvalidConfig, c.Window.Scale)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
