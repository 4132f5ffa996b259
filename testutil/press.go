// Package testutil provides helpers for driving a calculator engine from tests.
package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/keypad"
)

// Press classifies each label as the keypad would and submits it to e,
// returning the display after the last one. Any error fails the test.
func Press(tb testing.TB, e *calcx.Engine, labels ...string) string {
	tb.Helper()

	ctx := context.Background()
	display := e.Display()
	for _, label := range labels {
		tok, err := keypad.Parse(label)
		if err != nil {
			tb.Fatalf("press %q: %v", label, err)
		}
		display, err = e.Submit(ctx, tok)
		if err != nil {
			tb.Fatalf("submit %q: %v", label, err)
		}
	}
	return display
}

// NewEngine builds an engine with opts and fails the test on error.
func NewEngine(tb testing.TB, opts ...calcx.Option) *calcx.Engine {
	tb.Helper()

	e, err := calcx.NewEngine(opts...)
	if err != nil {
		tb.Fatalf("NewEngine: %v", err)
	}
	return e
}

// RecordingSink records every rendered display text.
type RecordingSink struct {
	mu     sync.Mutex
	frames []string
	Err    error // returned from Render when set
}

func (s *RecordingSink) Render(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.frames = append(s.frames, text)
	return nil
}

// Frames returns a copy of the rendered texts in order.
func (s *RecordingSink) Frames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.frames...)
}

// Last returns the most recent frame, or "" if nothing was rendered.
func (s *RecordingSink) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1]
}
