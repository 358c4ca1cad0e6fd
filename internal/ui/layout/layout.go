// Package layout holds the window geometry and text helpers that do not
// need a graphics context.
package layout

import (
	"image"
	"strings"
)

// Button is a clickable rectangle. Rects are in screen pixels.
type Button struct {
	Label   string
	Rect    image.Rectangle
	Visible bool
	Enabled bool
}

// Hit reports whether a click at p lands on a visible, enabled button.
func (b *Button) Hit(p image.Point) bool {
	return b.Visible && b.Enabled && p.In(b.Rect)
}

// Slot indexes of the main screen. Start and stop share SlotToggle.
const (
	SlotToggle = iota
	SlotSave
	SlotHistory
	slotCount
)

// MainSlots stacks the main buttons, w by h with gap between them,
// centred horizontally and starting at the vertical middle of the screen.
func MainSlots(screenWidth, screenHeight, w, h, gap int) [slotCount]image.Rectangle {
	var slots [slotCount]image.Rectangle
	x := (screenWidth - w) / 2
	y := screenHeight/2 - h/2
	for i := range slots {
		top := y + i*(h+gap)
		slots[i] = image.Rect(x, top, x+w, top+h)
	}
	return slots
}

// Scroll moves the first visible history line by one for each wheel
// notch direction and keeps it within [0, lines-1].
func Scroll(scroll int, wheelDY float64, lines int) int {
	switch {
	case wheelDY > 0:
		scroll--
	case wheelDY < 0:
		scroll++
	}
	return ClampScroll(scroll, lines)
}

// ClampScroll keeps scroll within [0, lines-1].
func ClampScroll(scroll, lines int) int {
	if last := lines - 1; scroll > last {
		scroll = last
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// Wrap breaks s into lines no wider than maxWidth, as reported by
// measure. Existing line breaks are kept; a single word wider than
// maxWidth gets a line of its own.
func Wrap(s string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measure(candidate) > maxWidth && line != "" {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
