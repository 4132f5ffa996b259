//go:build !cgo

package main

import (
	"context"
	"errors"

	"github.com/comalice/calcx/internal/config"
)

func runWindow(_ context.Context, _ *pad, _ config.Window) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
