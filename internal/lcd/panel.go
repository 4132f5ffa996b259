// Package lcd rasterizes the calculator display onto an RGBA framebuffer.
//
// Panel implements drivers.Displayer so tinyfont can draw into it, and
// calcx.DisplaySink so an engine can render straight to it.
package lcd

import (
	"context"
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

var (
	ColorBG = color.RGBA{R: 0x9e, G: 0xad, B: 0x86, A: 0xff}
	ColorFG = color.RGBA{R: 0x1b, G: 0x1f, B: 0x16, A: 0xff}
)

const padding = 6

var _ drivers.Displayer = (*Panel)(nil)

// Panel is a single-line LCD.
type Panel struct {
	img    *image.RGBA
	font   tinyfont.Fonter
	fg, bg color.RGBA
	text   string
	frames int
}

// New returns a blank panel of the given size.
func New(width, height int) *Panel {
	p := &Panel{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		font: &freemono.Bold12pt7b,
		fg:   ColorFG,
		bg:   ColorBG,
	}
	p.fill(p.img.Bounds(), p.bg)
	return p
}

func (p *Panel) Size() (x, y int16) {
	b := p.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (p *Panel) SetPixel(x, y int16, c color.RGBA) {
	if !image.Pt(int(x), int(y)).In(p.img.Bounds()) {
		return
	}
	p.img.SetRGBA(int(x), int(y), c)
}

// Display marks the end of a frame.
func (p *Panel) Display() error {
	p.frames++
	return nil
}

// FillRectangle fills the part of the rectangle that lies on the panel.
func (p *Panel) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	p.fill(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), c)
	return nil
}

// SetRotation is a no-op; the panel is always landscape.
func (p *Panel) SetRotation(drivers.Rotation) error {
	return nil
}

func (p *Panel) fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(p.img.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			p.img.SetRGBA(px, py, c)
		}
	}
}

// Render clears the panel and draws text right-aligned, vertically centered.
func (p *Panel) Render(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w, h := p.Size()
	p.fill(p.img.Bounds(), p.bg)

	_, outbox := tinyfont.LineWidth(p.font, text)
	x := w - padding - int16(outbox)
	if x < padding {
		x = padding
	}
	baseline := h/2 + int16(p.font.GetYAdvance())/3
	tinyfont.WriteLine(p, p.font, x, baseline, text, p.fg)

	p.text = text
	return p.Display()
}

// Image returns the framebuffer. It is overwritten by the next Render.
func (p *Panel) Image() *image.RGBA {
	return p.img
}

// Text returns the last rendered text.
func (p *Panel) Text() string {
	return p.text
}

// Frames returns how many frames have been rendered.
func (p *Panel) Frames() int {
	return p.frames
}
