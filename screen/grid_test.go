package screen

import (
	"strings"
	"testing"

	"flightosd/hal"
)

func TestWriteStringNeedsFlush(t *testing.T) {
	g := NewGrid()
	g.WriteString("HELLO", 31)

	if txt := g.Text(ASCIIGlyphs); strings.TrimSpace(txt) != "" {
		t.Fatalf("Text() before flush = %q, want blank", txt)
	}

	g.DrawScreenNonBlocking()
	lines := strings.Split(g.Text(ASCIIGlyphs), "\n")
	if len(lines) != Rows {
		t.Fatalf("lines = %d, want %d", len(lines), Rows)
	}
	if lines[1] != " HELLO" {
		t.Fatalf("line 1 = %q, want %q", lines[1], " HELLO")
	}
}

func TestFlushClearsBackBuffer(t *testing.T) {
	g := NewGrid()
	g.WriteString("ONE", 0)
	g.DrawScreenNonBlocking()
	g.DrawScreenNonBlocking()

	if txt := g.Text(ASCIIGlyphs); strings.TrimSpace(txt) != "" {
		t.Fatalf("Text() after second flush = %q, want blank", txt)
	}
	if g.Frames() != 2 {
		t.Fatalf("Frames() = %d, want 2", g.Frames())
	}
}

func TestWriteStringClipsAtEnd(t *testing.T) {
	g := NewGrid()
	g.WriteString("ABCDEF", Cells-3)
	g.WriteString("X", Cells+10)
	g.DrawScreenNonBlocking()

	lines := strings.Split(g.Text(ASCIIGlyphs), "\n")
	if got := lines[Rows-1]; got != strings.Repeat(" ", Columns-3)+"ABC" {
		t.Fatalf("last line = %q", got)
	}
}

func TestWriteStringWrapsLines(t *testing.T) {
	g := NewGrid()
	g.WriteString("ABCD", Columns-2)
	g.DrawScreenNonBlocking()

	lines := strings.Split(g.Text(ASCIIGlyphs), "\n")
	if !strings.HasSuffix(lines[0], "AB") || lines[1] != "CD" {
		t.Fatalf("lines = %q, %q", lines[0], lines[1])
	}
}

func TestGlyphs(t *testing.T) {
	if r := ASCIIGlyphs.Rune(0x97); r != 'B' {
		t.Fatalf("battery = %q, want 'B'", r)
	}
	if r := UnicodeGlyphs.Rune(0x9c); r != '◷' {
		t.Fatalf("clock = %q, want '◷'", r)
	}
	if r := UnicodeGlyphs.Rune(0x01); r != '?' {
		t.Fatalf("control code = %q, want '?'", r)
	}
	if r := ASCIIGlyphs.Rune('7'); r != '7' {
		t.Fatalf("digit = %q, want '7'", r)
	}
}

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB { return &testFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) Present() error          { f.presents++; return nil }

func (f *testFB) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *testFB) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

func (f *testFB) countIn(x0, y0, w, h int, p uint16) int {
	n := 0
	for y := y0; y < y0+h && y < f.h; y++ {
		for x := x0; x < x0+w && x < f.w; x++ {
			if f.pixel(x, y) == p {
				n++
			}
		}
	}
	return n
}

func TestRasterizerDrawsChangedFrames(t *testing.T) {
	fb := newTestFB(320, 240)
	r := NewRasterizer(fb)
	g := NewGrid()

	g.WriteString("8", 5*Columns+4)
	g.DrawScreenNonBlocking()

	drawn, err := r.Draw(g)
	if err != nil || !drawn {
		t.Fatalf("Draw() = %v, %v, want true, nil", drawn, err)
	}
	if fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", fb.presents)
	}

	fg := hal.RGB565(colorFG.R, colorFG.G, colorFG.B)
	x, y := r.CellOrigin(4, 5)
	if n := fb.countIn(int(x), int(y), 12, 16, fg); n == 0 {
		t.Fatalf("no glyph pixels in cell (4,5)")
	}
	x, y = r.CellOrigin(10, 10)
	if n := fb.countIn(int(x), int(y), int(r.cellW), int(r.cellH), fg); n != 0 {
		t.Fatalf("%d glyph pixels in a blank cell", n)
	}

	drawn, err = r.Draw(g)
	if err != nil || drawn {
		t.Fatalf("Draw() on an unchanged frame = %v, %v, want false, nil", drawn, err)
	}
}
