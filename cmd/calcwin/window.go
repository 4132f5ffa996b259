//go:build cgo

package main

import (
	"context"
	"image"
	"image/color"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/comalice/calcx/internal/config"
)

var (
	colorBody   = color.RGBA{R: 0x2b, G: 0x2d, B: 0x31, A: 0xff}
	colorKey    = color.RGBA{R: 0x4a, G: 0x4d, B: 0x55, A: 0xff}
	colorKeyOp  = color.RGBA{R: 0xd9, G: 0x82, B: 0x2b, A: 0xff}
	colorKeyHot = color.RGBA{R: 0x6b, G: 0x6f, B: 0x78, A: 0xff}
)

// runWindow opens the calculator window and blocks until it closes.
func runWindow(ctx context.Context, p *pad, cfg config.Window) error {
	g := &calcGame{ctx: ctx, p: p, footer: footerText(time.Now())}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(p.width*cfg.Scale, p.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type calcGame struct {
	ctx    context.Context
	p      *pad
	lcdImg *ebiten.Image
	footer string
}

func (g *calcGame) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if err := g.p.click(g.ctx, x, y); err != nil {
			return err
		}
	}
	return nil
}

func (g *calcGame) Draw(screen *ebiten.Image) {
	screen.Fill(colorBody)

	img := g.p.panel.Image()
	if g.lcdImg == nil {
		g.lcdImg = ebiten.NewImage(img.Bounds().Dx(), img.Bounds().Dy())
	}
	g.lcdImg.WritePixels(img.Pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.p.lcdAt.X), float64(g.p.lcdAt.Y))
	screen.DrawImage(g.lcdImg, op)

	cx, cy := ebiten.CursorPosition()
	for _, b := range g.p.layout.Buttons {
		fill := colorKey
		if isOperatorKey(b.Label) {
			fill = colorKeyOp
		}
		if image.Pt(cx, cy).In(b.Rect) {
			fill = colorKeyHot
		}
		r := b.Rect
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)

		text := keyCap(b.Label)
		ebitenutil.DebugPrintAt(screen, text, r.Min.X+r.Dx()/2-3*utf8.RuneCountInString(text), r.Min.Y+r.Dy()/2-8)
	}

	at := g.p.footerAt()
	ebitenutil.DebugPrintAt(screen, g.footer, at.X, at.Y)
}

func (g *calcGame) Layout(_, _ int) (int, int) {
	return g.p.width, g.p.height
}
