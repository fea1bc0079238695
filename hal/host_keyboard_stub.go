//go:build !tinygo && !cgo

package hal

// hostKeyboard without cgo has no window to poll. The channel stays empty;
// the terminal front-end and scripts feed keys to the app directly.
type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard { return &hostKeyboard{ch: make(chan KeyEvent)} }

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }
