// Package ui draws the tracker window with Ebiten.
package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"github.com/temidaradev/esset/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"pricetracker/internal/app"
	"pricetracker/internal/tracker"
	"pricetracker/internal/ui/layout"
)

const glyphsToPreload = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:/$|'!- "

const (
	baseFontSize   = 14
	statusFontSize = 20
	buttonWidth    = 200
	buttonHeight   = 36
	buttonGap      = 10
)

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
}

// Game implements ebiten.Game on top of an app.Surface. All surface
// actions and scheduled ticks run inside Update, on Ebiten's thread.
type Game struct {
	ctx     context.Context
	surface *app.Surface
	queue   *tracker.Queue
	logger  zerolog.Logger

	fontFace    text.Face
	statusFace  text.Face
	monoFace    text.Face
	lineHeight  float64
	deviceScale float64

	startBtn, stopBtn, saveBtn, historyBtn *button
	okBtn, closeBtn                       *button

	historyScroll   int
	solidColorImage *ebiten.Image
}

// NewGame loads fonts and builds the widgets. queue may be nil when the
// surface has no tracker.
func NewGame(ctx context.Context, surface *app.Surface, queue *tracker.Queue, logger zerolog.Logger) (*Game, error) {
	deviceScale := ebiten.Monitor().DeviceScaleFactor()

	fontFace, err := esset.GetFont(goregular.TTF, int(baseFontSize*deviceScale))
	if err != nil {
		return nil, fmt.Errorf("font could not be loaded with scaled size %f: %w", baseFontSize*deviceScale, err)
	}
	statusFace, err := esset.GetFont(goregular.TTF, int(statusFontSize*deviceScale))
	if err != nil {
		return nil, fmt.Errorf("status font could not be loaded: %w", err)
	}
	monoFace, err := esset.GetFont(gomono.TTF, int((baseFontSize-2)*deviceScale))
	if err != nil {
		return nil, fmt.Errorf("mono font could not be loaded: %w", err)
	}

	logger.Debug().Msg("glyph caching")
	tempImage := ebiten.NewImage(1, 1)
	for _, face := range []text.Face{fontFace, statusFace, monoFace} {
		text.Draw(tempImage, glyphsToPreload, face, &text.DrawOptions{})
	}

	g := &Game{
		ctx:         ctx,
		surface:     surface,
		queue:       queue,
		logger:      logger.With().Str("component", "ui").Logger(),
		fontFace:    fontFace,
		statusFace:  statusFace,
		monoFace:    monoFace,
		lineHeight:  baseFontSize*deviceScale*1.5 + 2*deviceScale,
		deviceScale: deviceScale,
	}

	g.startBtn = &button{Button: layout.Button{Label: "Start Tracking"}, onClick: surface.Start}
	g.stopBtn = &button{Button: layout.Button{Label: "Stop Tracking"}, onClick: surface.Stop}
	g.saveBtn = &button{Button: layout.Button{Label: "Save Price"}, onClick: func() { surface.Save(g.ctx) }}
	g.historyBtn = &button{Button: layout.Button{Label: "Show History"}, onClick: func() {
		g.historyScroll = 0
		surface.ShowHistory(g.ctx)
	}}
	g.okBtn = &button{Button: layout.Button{Label: "OK"}, onClick: surface.DismissDialog}
	g.closeBtn = &button{Button: layout.Button{Label: "Close"}, onClick: surface.CloseHistory}
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	return ebiten.RunGame(g)
}

func (g *Game) initSolidColorImage() {
	if g.solidColorImage == nil {
		g.solidColorImage = ebiten.NewImage(1, 1)
		g.solidColorImage.Fill(color.White)
	}
}

func (g *Game) scaled(v float64) int { return int(v * g.deviceScale) }

// layout positions the buttons for a screen of the given size. Start
// and stop share the first slot; only one of them is visible.
func (g *Game) layout(screenWidth, screenHeight int) {
	h, gap := g.scaled(buttonHeight), g.scaled(buttonGap)
	slots := layout.MainSlots(screenWidth, screenHeight, g.scaled(buttonWidth), h, gap)

	g.startBtn.Rect, g.stopBtn.Rect = slots[layout.SlotToggle], slots[layout.SlotToggle]
	g.saveBtn.Rect = slots[layout.SlotSave]
	g.historyBtn.Rect = slots[layout.SlotHistory]

	g.startBtn.Visible, g.startBtn.Enabled = g.surface.StartVisible(), true
	g.stopBtn.Visible, g.stopBtn.Enabled = g.surface.StopVisible(), true
	g.saveBtn.Visible, g.saveBtn.Enabled = !g.surface.Fatal(), g.surface.SaveEnabled()
	g.historyBtn.Visible, g.historyBtn.Enabled = !g.surface.Fatal(), true

	okW := g.scaled(80)
	g.okBtn.Rect = image.Rect((screenWidth-okW)/2, screenHeight/2+g.scaled(40), (screenWidth+okW)/2, screenHeight/2+g.scaled(40)+h)
	g.okBtn.Visible, g.okBtn.Enabled = true, true

	closeW := g.scaled(80)
	g.closeBtn.Rect = image.Rect(screenWidth-closeW-gap, gap, screenWidth-gap, gap+g.scaled(28))
	g.closeBtn.Visible, g.closeBtn.Enabled = true, true
}

func (g *Game) Update() error {
	if g.surface.Quit() || g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.queue != nil {
		g.queue.RunDue()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.surface.Escape() {
		return nil
	}

	if _, ok := g.surface.Dialog(); ok {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.surface.DismissDialog()
			return nil
		}
		g.click(g.okBtn)
		return nil
	}

	if h := g.surface.History(); h != nil {
		_, dy := ebiten.Wheel()
		g.historyScroll = layout.Scroll(g.historyScroll, dy, len(h.Lines))
		g.click(g.closeBtn)
		return nil
	}

	for _, b := range []*button{g.startBtn, g.stopBtn, g.saveBtn, g.historyBtn} {
		if g.click(b) {
			break
		}
	}
	return nil
}

func (g *Game) click(b *button) bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	if !b.Hit(image.Pt(ebiten.CursorPosition())) {
		return false
	}
	g.logger.Debug().Str("button", b.Label).Msg("clicked")
	b.onClick()
	return true
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.initSolidColorImage()
	screen.Fill(colorBackground)

	bounds := screen.Bounds()
	g.layout(bounds.Dx(), bounds.Dy())
	cursor := image.Pt(ebiten.CursorPosition())

	if h := g.surface.History(); h != nil {
		g.drawHistory(screen, h, cursor)
	} else {
		status := strings.Split(g.surface.Status(), "\n")
		statusLine := float64(statusFontSize)*g.deviceScale*1.4
		g.drawLines(screen, status, float64(bounds.Dx())/2.0, float64(g.scaled(30)), g.statusFace, colorStatus, statusLine)

		for _, b := range []*button{g.startBtn, g.stopBtn, g.saveBtn, g.historyBtn} {
			g.drawButton(screen, b, cursor)
		}
	}

	if d, ok := g.surface.Dialog(); ok {
		g.drawDialog(screen, d, cursor)
	}
}

func (g *Game) drawDialog(screen *ebiten.Image, d app.Dialog, cursor image.Point) {
	bounds := screen.Bounds()
	fillRect(screen, bounds, colorShade)

	box := image.Rect(g.scaled(30), bounds.Dy()/2-g.scaled(80), bounds.Dx()-g.scaled(30), bounds.Dy()/2+g.scaled(90))
	fillRect(screen, box, colorPanel)

	accent := colorInfo
	switch d.Kind {
	case app.Warning:
		accent = colorWarning
	case app.Error:
		accent = colorError
	}
	fillRect(screen, image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+g.scaled(4)), accent)

	cx := float64(box.Min.X+box.Max.X) / 2.0
	y := float64(box.Min.Y + g.scaled(16))
	y = g.drawLines(screen, []string{d.Title}, cx, y, g.fontFace, accent, g.lineHeight)
	g.drawLines(screen, layout.Wrap(d.Message, float64(box.Dx()-g.scaled(20)), g.measure), cx, y+g.lineHeight/2, g.fontFace, colorText, g.lineHeight)

	g.drawButton(screen, g.okBtn, cursor)
}

func (g *Game) measure(s string) float64 {
	w, _ := text.Measure(s, g.fontFace, 0)
	return w
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(float64(outsideWidth) * g.deviceScale), int(float64(outsideHeight) * g.deviceScale)
}
