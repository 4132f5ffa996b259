package main

import (
	"context"
	"image"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive

	"github.com/comalice/calcx"
)

func newTestPad(t *testing.T, opts ...calcx.Option) *pad {
	t.Helper()
	p, err := newPad(slog.New(slog.DiscardHandler), opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return p
}

func center(t *testing.T, p *pad, label string) image.Point {
	t.Helper()
	for _, b := range p.layout.Buttons {
		if b.Label == label {
			r := b.Rect
			return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
		}
	}
	t.Fatalf("no button %q", label)
	return image.Point{}
}

func TestPad_ClicksDriveTheEngine(t *testing.T) {
	g := NewWithT(t)
	p := newTestPad(t)
	ctx := context.Background()

	g.Expect(p.panel.Text()).To(Equal("0"))
	for _, label := range []string{"7", "X", "6", "="} {
		at := center(t, p, label)
		g.Expect(p.click(ctx, at.X, at.Y)).To(Succeed())
	}
	g.Expect(p.engine.Display()).To(Equal("42"))
	g.Expect(p.panel.Text()).To(Equal("42"))
	g.Expect(p.panel.Frames()).To(Equal(5))
}

func TestPad_ClickOutsideKeypad(t *testing.T) {
	g := NewWithT(t)
	p := newTestPad(t)

	g.Expect(p.click(context.Background(), 0, 0)).To(Succeed())
	g.Expect(p.click(context.Background(), p.width-1, p.height-1)).To(Succeed())
	g.Expect(p.panel.Frames()).To(Equal(1))
}

func TestPad_PressIgnoresUnknownLabels(t *testing.T) {
	g := NewWithT(t)
	p := newTestPad(t)
	ctx := context.Background()

	g.Expect(p.press(ctx, "q")).To(Succeed())
	g.Expect(p.press(ctx, "9")).To(Succeed())
	g.Expect(p.press(ctx, "√")).To(Succeed())
	g.Expect(p.engine.Display()).To(Equal("3.000"))
}

func TestPad_ResumesState(t *testing.T) {
	g := NewWithT(t)
	st := calcx.CalculatorState{
		DisplayText:        "DIV",
		CurrentOperand:     "9",
		PendingOperand:     "9",
		PendingOperator:    calcx.OpDivide,
		AwaitingFreshEntry: true,
	}
	p := newTestPad(t, calcx.WithState(st))
	g.Expect(p.panel.Text()).To(Equal("DIV"))

	at := center(t, p, "2")
	g.Expect(p.click(context.Background(), at.X, at.Y)).To(Succeed())
	g.Expect(p.press(context.Background(), "=")).To(Succeed())
	g.Expect(p.engine.Display()).To(Equal("4.50"))
}

func TestPad_Geometry(t *testing.T) {
	g := NewWithT(t)
	p := newTestPad(t)

	g.Expect(p.layout.Bounds.Max.X + margin).To(Equal(p.width))
	g.Expect(p.footerAt().Y).To(BeNumerically("<", p.height))
	g.Expect(p.panel.Image().Bounds().Dx()).To(Equal(p.layout.Bounds.Dx()))
}

func TestKeyCaps(t *testing.T) {
	g := NewWithT(t)

	g.Expect(keyCap("√")).To(Equal("sqrt"))
	g.Expect(keyCap("7")).To(Equal("7"))
	g.Expect(isOperatorKey("÷")).To(BeTrue())
	g.Expect(isOperatorKey("AC")).To(BeTrue())
	g.Expect(isOperatorKey(".")).To(BeFalse())
	g.Expect(isOperatorKey("3")).To(BeFalse())
	g.Expect(footerText(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))).To(Equal("© 2026"))
}
