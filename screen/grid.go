// Package screen is a host stand-in for the OSD character generator: a
// 30x16 cell grid written by linear position and flushed in one go.
package screen

import (
	"strings"
	"sync"
)

const (
	Columns = 30
	Rows    = 16
	Cells   = Columns * Rows

	blank = ' '
)

// Grid has a back buffer for writes and a front buffer that holds the last
// flushed frame. Flushing clears the back buffer, so every content pass
// redraws from scratch.
type Grid struct {
	mu     sync.Mutex
	back   [Cells]byte
	front  [Cells]byte
	frames uint64
}

// NewGrid returns a blank grid.
func NewGrid() *Grid {
	g := &Grid{}
	for i := range g.back {
		g.back[i] = blank
		g.front[i] = blank
	}
	return g
}

// WriteString places s starting at pos. Text runs on into the next line and
// is cut at the end of the screen.
func (g *Grid) WriteString(s string, pos uint16) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < len(s); i++ {
		p := int(pos) + i
		if p >= Cells {
			return
		}
		g.back[p] = s[i]
	}
}

// DrawScreenNonBlocking publishes the back buffer and blanks it.
func (g *Grid) DrawScreenNonBlocking() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.front = g.back
	for i := range g.back {
		g.back[i] = blank
	}
	g.frames++
}

// Frame copies the published frame into dst and returns the flush count.
func (g *Grid) Frame(dst *[Cells]byte) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	*dst = g.front
	return g.frames
}

// Frames returns the number of flushes so far.
func (g *Grid) Frames() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frames
}

// Text renders the published frame as lines of text using glyphs.
func (g *Grid) Text(glyphs Glyphs) string {
	var cells [Cells]byte
	g.Frame(&cells)
	return FrameText(&cells, glyphs)
}

// FrameText renders cells as Rows newline-separated lines. Trailing blanks
// are trimmed.
func FrameText(cells *[Cells]byte, glyphs Glyphs) string {
	var b strings.Builder
	for row := 0; row < Rows; row++ {
		line := make([]rune, 0, Columns)
		for _, c := range cells[row*Columns : (row+1)*Columns] {
			line = append(line, glyphs.Rune(c))
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		if row < Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
