package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/keypad"
	"github.com/comalice/calcx/internal/lcd"
)

// Logical screen geometry, before window scaling.
const (
	margin     = 10
	cellSize   = 56
	cellGap    = 6
	lcdHeight  = 56
	footerSize = 20
)

// pad is the calculator face: an LCD on top of a clickable keypad.
type pad struct {
	engine *calcx.Engine
	panel  *lcd.Panel
	layout keypad.Layout
	logger *slog.Logger
	lcdAt  image.Point
	width  int
	height int
}

func newPad(logger *slog.Logger, opts ...calcx.Option) (*pad, error) {
	layout := keypad.NewLayout(margin, margin+lcdHeight+margin, cellSize, cellSize, cellGap)
	p := &pad{
		panel:  lcd.New(layout.Bounds.Dx(), lcdHeight),
		layout: layout,
		logger: logger,
		lcdAt:  image.Pt(margin, margin),
		width:  layout.Bounds.Max.X + margin,
		height: layout.Bounds.Max.Y + footerSize + margin,
	}
	opts = append(opts, calcx.WithSink(p.panel), calcx.WithLogger(logger))
	e, err := calcx.NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	p.engine = e
	return p, nil
}

func (p *pad) start(ctx context.Context) error {
	return p.engine.Start(ctx)
}

// click presses the button under (x, y), if any.
func (p *pad) click(ctx context.Context, x, y int) error {
	b, ok := p.layout.HitTest(x, y)
	if !ok {
		return nil
	}
	return p.press(ctx, b.Label)
}

// press submits one button label. Labels that name no button are logged and dropped.
func (p *pad) press(ctx context.Context, label string) error {
	tok, err := keypad.Parse(label)
	if err != nil {
		p.logger.DebugContext(ctx, "key ignored", "label", label, "err", err)
		return nil
	}
	_, err = p.engine.Submit(ctx, tok)
	return err
}

// footerText is the copyright line under the keypad.
func footerText(now time.Time) string {
	return fmt.Sprintf("© %d", now.Year())
}

func (p *pad) footerAt() image.Point {
	return image.Pt(margin, p.layout.Bounds.Max.Y+margin/2)
}

// keyCap is the text printed on a button. The debug font only covers Latin-1.
func keyCap(label string) string {
	if label == "√" {
		return "sqrt"
	}
	return label
}

func isOperatorKey(label string) bool {
	tok, err := keypad.Parse(label)
	if err != nil {
		return false
	}
	return tok.Kind != calcx.KindDigit && tok.Kind != calcx.KindDecimalPoint
}
