//go:build !tinygo && !cgo

package hal

import "fmt"

// RunWindow needs the ebiten backend, which needs cgo. Use the headless or
// terminal front-end instead, or rebuild with CGO_ENABLED=1.
func RunWindow(_ HAL, _ func() error, _ int) error {
	return fmt.Errorf("window front-end: %w without cgo", ErrNotImplemented)
}
