// Package logging builds the structured logger shared by the front ends.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/comalice/calcx/internal/config"
)

// New returns a logger writing to w with the configured level and format.
func New(w io.Writer, cfg config.Log) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("log format %q: %w", cfg.Format, config.ErrInvalidConfig)
}
