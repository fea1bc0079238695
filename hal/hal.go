package hal

import (
	"errors"
	"fmt"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented         = errors.New("not implemented")
	ErrFlashWriteRequiresErase = errors.New("flash write requires erase")
)

// Logf formats a line onto log. A nil log drops the line.
func Logf(log Logger, format string, args ...any) {
	if log == nil {
		return
	}
	log.WriteLineString(fmt.Sprintf(format, args...))
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeySpace
)

// KeyEvent is a keyboard event. Printable keys carry Rune with Code == KeyUnknown.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Clock is a free-running microsecond counter. It wraps at 2^32.
type Clock interface {
	Micros() uint32
}

// HAL provides the only contact point between the OSD and the outside world.
type HAL interface {
	Logger() Logger
	Framebuffer() Framebuffer
	Keyboard() Keyboard
	Flash() Flash
	Clock() Clock
}
