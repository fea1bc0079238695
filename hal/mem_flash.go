package hal

import (
	"fmt"
	"os"
	"sync"
)

const memFlashEraseBlockBytes = 4096

// MemFlash is a RAM-backed Flash with the same erase-before-write rule as the
// file-backed host flash.
type MemFlash struct {
	mu  sync.Mutex
	buf []byte
}

// NewMemFlash returns an erased flash of size bytes, rounded up to the erase block.
func NewMemFlash(size uint32) *MemFlash {
	if rem := size % memFlashEraseBlockBytes; rem != 0 {
		size += memFlashEraseBlockBytes - rem
	}
	f := &MemFlash{buf: make([]byte, size)}
	for i := range f.buf {
		f.buf[i] = 0xFF
	}
	return f
}

func (f *MemFlash) SizeBytes() uint32       { return uint32(len(f.buf)) }
func (f *MemFlash) EraseBlockBytes() uint32 { return memFlashEraseBlockBytes }

func (f *MemFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= uint32(len(f.buf)) {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	return copy(p, f.buf[off:]), nil
}

func (f *MemFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= uint32(len(f.buf)) {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	dst := f.buf[off:]
	if len(p) > len(dst) {
		p = p[:len(dst)]
	}
	for i := range p {
		if dst[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return copy(dst, p), nil
}

func (f *MemFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if size == 0 {
		return nil
	}
	if off%memFlashEraseBlockBytes != 0 || size%memFlashEraseBlockBytes != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	if uint64(off)+uint64(size) > uint64(len(f.buf)) {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	for i := off; i < off+size; i++ {
		f.buf[i] = 0xFF
	}
	return nil
}
