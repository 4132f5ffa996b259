package keypad

import "image"

// Rows is the button grid, top to bottom. "0" spans two columns.
var Rows = [][]string{
	{"AC", "√", "%", "÷"},
	{"7", "8", "9", "X"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", ".", "="},
}

const columns = 4

// Button is one clickable cell.
type Button struct {
	Label string
	Rect  image.Rectangle
}

// Layout places the buttons of Rows on screen.
type Layout struct {
	Buttons []Button
	Bounds  image.Rectangle
}

// NewLayout lays the grid out from the top-left corner (x, y) with cells of
// cellW x cellH pixels separated by gap pixels.
func NewLayout(x, y, cellW, cellH, gap int) Layout {
	var l Layout
	for r, row := range Rows {
		col := 0
		for _, label := range row {
			span := 1
			if label == "0" && len(row) < columns {
				span = 2
			}
			x0 := x + col*(cellW+gap)
			y0 := y + r*(cellH+gap)
			w := span*cellW + (span-1)*gap
			l.Buttons = append(l.Buttons, Button{
				Label: label,
				Rect:  image.Rect(x0, y0, x0+w, y0+cellH),
			})
			col += span
		}
	}
	l.Bounds = image.Rect(x, y,
		x+columns*cellW+(columns-1)*gap,
		y+len(Rows)*cellH+(len(Rows)-1)*gap)
	return l
}

// HitTest returns the button under the point.
func (l Layout) HitTest(x, y int) (Button, bool) {
	p := image.Pt(x, y)
	for _, b := range l.Buttons {
		if p.In(b.Rect) {
			return b, true
		}
	}
	return Button{}, false
}
