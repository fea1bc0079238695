//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// HostConfig selects the host backing resources.
type HostConfig struct {
	// Width and Height size the framebuffer in pixels.
	Width  int
	Height int
	// FlashPath is the file backing the emulated config flash. Empty keeps flash in memory.
	FlashPath string
	// LogOutput receives log lines; nil means stderr.
	LogOutput io.Writer
	// Clock overrides the wall clock, e.g. with a ManualClock for scripted runs.
	Clock Clock
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	clock  Clock
	flash  Flash
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}

	var flash Flash
	if cfg.FlashPath != "" {
		flash = newHostFlash(cfg.FlashPath)
	} else {
		flash = NewMemFlash(hostFlashDefaultSizeBytes)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = newHostClock()
	}

	return &hostHAL{
		logger: newHostLogger(out),
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		clock:  clock,
		flash:  flash,
	}
}

func (h *hostHAL) Logger() Logger           { return h.logger }
func (h *hostHAL) Framebuffer() Framebuffer { return h.fb }
func (h *hostHAL) Keyboard() Keyboard       { return h.kbd }
func (h *hostHAL) Flash() Flash             { return h.flash }
func (h *hostHAL) Clock() Clock             { return h.clock }

type hostLogger struct {
	mu    sync.Mutex
	entry *logrus.Entry
}

func newHostLogger(w io.Writer) *hostLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return &hostLogger{entry: l.WithField("module", "osd")}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry.Info(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}
