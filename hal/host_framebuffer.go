//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

// hostFramebuffer is an RGB565 pixel buffer. Present only bumps a frame
// counter; the window backend copies pixels out when the counter moves.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []byte
	frames uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		buf:    make([]byte, width*2*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.width * 2 }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.frames++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := color.RGBA{R: r, G: g, B: b, A: 0xFF}
	for i := 0; i+1 < len(f.buf); i += 2 {
		PutPixel565(f.buf, i, c)
	}
}

// snapshotRGB565 copies the pixels into dst and reports the frame counter.
func (f *hostFramebuffer) snapshotRGB565(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
	return f.frames
}
