package production

import (
	"context"
	"fmt"
	"io"
)

// WriterSink writes each display text on its own line.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a WriterSink over w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Render(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(s.w, text); err != nil {
		return fmt.Errorf("write display: %w", err)
	}
	return nil
}
