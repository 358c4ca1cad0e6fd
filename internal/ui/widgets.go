package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/temidaradev/esset/v2"

	"pricetracker/internal/ui/layout"
)

var (
	colorBackground = color.RGBA{0x1c, 0x1c, 0x1c, 255}
	colorButton     = color.RGBA{0x33, 0x33, 0x33, 255}
	colorButtonHot  = color.RGBA{0x55, 0x55, 0x55, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorDisabled   = color.RGBA{120, 120, 120, 255}
	colorStatus     = color.RGBA{0, 255, 255, 255}
	colorMuted      = color.RGBA{150, 150, 150, 255}
	colorPanel      = color.RGBA{50, 50, 50, 255}
	colorShade      = color.RGBA{0, 0, 0, 160}
	colorInfo       = color.RGBA{0, 200, 255, 255}
	colorWarning    = color.RGBA{255, 200, 0, 255}
	colorError      = color.RGBA{255, 80, 80, 255}
)

// button binds a layout.Button to the action it triggers.
type button struct {
	layout.Button
	onClick func()
}

func (g *Game) drawButton(screen *ebiten.Image, b *button, cursor image.Point) {
	if !b.Visible {
		return
	}
	bg, fg := colorButton, colorText
	if !b.Enabled {
		fg = colorDisabled
	} else if cursor.In(b.Rect) {
		bg = colorButtonHot
	}
	fillRect(screen, b.Rect, bg)
	g.drawCentered(screen, b.Label, b.Rect, g.fontFace, fg)
}

func fillRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

func (g *Game) drawCentered(dst *ebiten.Image, s string, r image.Rectangle, face text.Face, c color.RGBA) {
	w, h := text.Measure(s, face, 0)
	x := float64(r.Min.X) + (float64(r.Dx())-w)/2.0
	y := float64(r.Min.Y) + (float64(r.Dy())-h)/2.0
	esset.DrawText(dst, s, 0, x, y, face, c)
}

// drawLines draws each line centred horizontally on cx, starting at y,
// and returns the y just below the last line.
func (g *Game) drawLines(dst *ebiten.Image, lines []string, cx, y float64, face text.Face, c color.RGBA, lineHeight float64) float64 {
	for _, line := range lines {
		w, _ := text.Measure(line, face, 0)
		esset.DrawText(dst, line, 0, cx-w/2.0, y, face, c)
		y += lineHeight
	}
	return y
}
