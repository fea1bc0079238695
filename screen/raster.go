package screen

import (
	"image/color"

	"flightosd/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colorBG     = color.RGBA{R: 0x10, G: 0x18, B: 0x20, A: 0xff}
	colorFG     = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	colorShadow = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

var _ drivers.Displayer = (*fbDisplay)(nil)

type fbDisplay struct {
	fb hal.Framebuffer
}

// FramebufferDisplay adapts an RGB565 framebuffer for tinyfont drawing.
func FramebufferDisplay(fb hal.Framebuffer) drivers.Displayer {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	hal.PutPixel565(buf, iy*d.fb.StrideBytes()+ix*2, c)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// Rasterizer draws grid frames onto a framebuffer.
type Rasterizer struct {
	d          *fbDisplay
	font       tinyfont.Fonter
	cellW      int16
	cellH      int16
	originX    int16
	originY    int16
	fontOffset int16

	last  uint64
	cells [Cells]byte
}

// NewRasterizer sizes the cells to fit the framebuffer.
func NewRasterizer(fb hal.Framebuffer) *Rasterizer {
	r := &Rasterizer{
		d:          &fbDisplay{fb: fb},
		font:       &proggy.TinySZ8pt7b,
		fontOffset: 9,
		last:       ^uint64(0),
	}
	w, h := r.d.Size()
	r.cellW = w / Columns
	r.cellH = h / Rows
	r.originX = (w - r.cellW*Columns) / 2
	r.originY = (h - r.cellH*Rows) / 2
	return r
}

// CellOrigin returns the top left pixel of a cell.
func (r *Rasterizer) CellOrigin(col, row int) (x, y int16) {
	return r.originX + int16(col)*r.cellW, r.originY + int16(row)*r.cellH
}

// Draw rasterizes the grid's published frame if it changed since the last
// call. It reports whether anything was drawn.
func (r *Rasterizer) Draw(g *Grid) (bool, error) {
	frames := g.Frame(&r.cells)
	if frames == r.last {
		return false, nil
	}
	r.last = frames

	fb := r.d.fb
	if fb == nil {
		return false, hal.ErrNotImplemented
	}
	fb.ClearRGB(colorBG.R, colorBG.G, colorBG.B)
	for i, c := range r.cells {
		if c == blank {
			continue
		}
		x, y := r.CellOrigin(i%Columns, i/Columns)
		ch := ASCIIGlyphs.Rune(c)
		// Shadow first, glyph on top.
		tinyfont.DrawChar(r.d, r.font, x+1, y+r.fontOffset+1, ch, colorShadow)
		tinyfont.DrawChar(r.d, r.font, x, y+r.fontOffset, ch, colorFG)
	}
	return true, r.d.Display()
}
