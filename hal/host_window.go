//go:build !tinygo && cgo

package hal

import (
	"image"

	"flightosd/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window showing h's framebuffer at scale and
// forwards keyboard input. step runs once per window tick (60 Hz). It blocks
// until the window closes or step fails.
func RunWindow(h HAL, step func() error, scale int) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return ErrNotImplemented
	}
	if scale <= 0 {
		scale = 2
	}

	g := &hostGame{h: hh, step: step, frame: ^uint64(0)}
	ebiten.SetWindowTitle("OSD simulator (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(hh.fb.width*scale, hh.fb.height*scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	frame   uint64
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	if frame := fb.snapshotRGB565(g.scratch); frame != g.frame {
		g.frame = frame
		src := g.scratch
		dst := g.img.Pix
		for i := 0; i+1 < len(src); i += 2 {
			c := Pixel565(src, i)
			j := (i / 2) * 4
			dst[j+0] = c.R
			dst[j+1] = c.G
			dst[j+2] = c.B
			dst[j+3] = c.A
		}
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
