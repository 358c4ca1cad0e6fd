package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/temidaradev/esset/v2"

	"pricetracker/internal/app"
	"pricetracker/internal/ui/layout"
)

// drawHistory renders the saved prices view: the listing on top and a
// BTC line chart of the same rows underneath.
func (g *Game) drawHistory(screen *ebiten.Image, h *app.HistoryView, cursor image.Point) {
	bounds := screen.Bounds()
	pad := g.scaled(10)

	esset.DrawText(screen, "Saved Prices", 0, float64(pad), float64(pad), g.fontFace, colorText)
	g.drawButton(screen, g.closeBtn, cursor)

	if h.Empty() {
		g.drawCentered(screen, h.Lines[0], bounds, g.fontFace, colorText)
		return
	}

	listTop := g.closeBtn.Rect.Max.Y + pad
	chartTop := bounds.Dy() * 3 / 5
	monoLine := g.lineHeight * 0.9

	y := float64(listTop)
	for _, line := range h.Lines[layout.ClampScroll(g.historyScroll, len(h.Lines)):] {
		if y+monoLine > float64(chartTop-pad) {
			break
		}
		esset.DrawText(screen, line, 0, float64(pad), y, g.monoFace, colorText)
		y += monoLine
	}

	chartRect := image.Rect(g.scaled(30), chartTop+pad, bounds.Dx()-g.scaled(30), bounds.Dy()-g.scaled(30))
	g.drawPriceChart(screen, h, chartRect)
}

// drawPriceChart plots the BTC price of every saved snapshot, oldest on
// the left.
func (g *Game) drawPriceChart(screen *ebiten.Image, h *app.HistoryView, chartRect image.Rectangle) {
	fillRect(screen, chartRect, colorPanel)

	label := "BTC"
	labelWidth, labelHeight := text.Measure(label, g.fontFace, 0)
	labelX := float64(chartRect.Min.X) + (float64(chartRect.Dx())-labelWidth)/2.0
	labelY := float64(chartRect.Min.Y) - (labelHeight + 2*g.deviceScale)
	esset.DrawText(screen, label, 0, labelX, labelY, g.fontFace, colorMuted)

	prices := make([]float64, len(h.Snapshots))
	for i, snap := range h.Snapshots {
		prices[len(prices)-1-i] = snap.BTCPrice
	}

	if len(prices) == 1 {
		cx := float64(chartRect.Min.X) + float64(chartRect.Dx())/2.0
		cy := float64(chartRect.Min.Y) + float64(chartRect.Dy())/2.0
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), 3.0*float32(g.deviceScale), colorWarning, false)
		return
	}

	minPrice, maxPrice := prices[0], prices[0]
	for _, p := range prices {
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}
	priceRange := maxPrice - minPrice
	if priceRange == 0 {
		priceRange = 1.0
		minPrice -= 0.5
	}

	point := func(i int) (float32, float32) {
		x := float64(chartRect.Min.X) + (float64(i)/float64(len(prices)-1))*float64(chartRect.Dx())
		y := float64(chartRect.Max.Y) - ((prices[i]-minPrice)/priceRange)*float64(chartRect.Dy())
		return float32(x), float32(y)
	}

	path := &vector.Path{}
	path.MoveTo(point(0))
	for i := 1; i < len(prices); i++ {
		path.LineTo(point(i))
	}

	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width: 2.0 * float32(g.deviceScale),
	})
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR = 0
		vs[i].ColorG = 200.0 / 255.0
		vs[i].ColorB = 1
		vs[i].ColorA = 1
	}
	screen.DrawTriangles(vs, is, g.solidColorImage, &ebiten.DrawTrianglesOptions{})

	lastX, lastY := point(len(prices) - 1)
	vector.DrawFilledCircle(screen, lastX, lastY, 3.0*float32(g.deviceScale), colorWarning, false)
}
