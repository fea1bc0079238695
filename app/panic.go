package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"flightosd/hal"
	"flightosd/screen"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// ErrPanicked is returned by a guarded step after it recovered a panic.
var ErrPanicked = errors.New("osd panicked")

// Guard wraps step so that a panic is logged with its stack, drawn onto the
// framebuffer and turned into ErrPanicked. Later calls keep returning
// ErrPanicked without running step.
func Guard(h hal.HAL, step func() error) func() error {
	var dead bool
	return func() (err error) {
		if dead {
			return ErrPanicked
		}
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			dead = true
			stack := debug.Stack()
			reportPanic(h, v, stack)
			err = fmt.Errorf("%w: %v", ErrPanicked, v)
		}()
		return step()
	}
}

func reportPanic(h hal.HAL, v any, stack []byte) {
	var lines []string
	lines = append(lines, "OSD panic:", fmt.Sprintf("panic: %v", v))
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	fb := h.Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)

	font := &proggy.TinySZ8pt7b
	fontHeight, fontOffset := int16(12), int16(9)
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}

	d := screen.FramebufferDisplay(fb)
	fg := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	maxH := int16(fb.Height())
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, font, fontWidth, fontOffset, 0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = fb.Present()
}

func drawTextLine(
	d drivers.Displayer,
	font tinyfont.Fonter,
	fontWidth, fontOffset int16,
	x0, y0 int16,
	s string,
	fg color.RGBA,
) {
	drawX := x0
	for _, r := range s {
		if r == '\t' {
			r = ' '
		}
		tinyfont.DrawChar(d, font, drawX, y0+fontOffset, r, fg)
		drawX += fontWidth
	}
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
