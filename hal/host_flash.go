//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

const hostFlashDefaultSizeBytes = 64 * 1024

// hostFlash mirrors a MemFlash into a file so saved settings survive restarts.
// Every mutation is written through to the touched range.
type hostFlash struct {
	mu  sync.Mutex
	mem *MemFlash
	f   *os.File
}

func newHostFlash(path string) Flash {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return &hostFlash{}
	}

	size := uint32(hostFlashDefaultSizeBytes)
	if st, err := f.Stat(); err == nil && st.Size() > 0 {
		if st.Size() > int64(^uint32(0)) {
			_ = f.Close()
			return &hostFlash{}
		}
		size = uint32(st.Size())
	}

	mem := NewMemFlash(size)
	if _, err := f.ReadAt(mem.buf, 0); err != nil {
		// Short or fresh file: keep the erased image and materialize it.
		if _, err := f.WriteAt(mem.buf, 0); err != nil {
			_ = f.Close()
			return &hostFlash{}
		}
	}
	return &hostFlash{mem: mem, f: f}
}

func (f *hostFlash) SizeBytes() uint32 {
	if f.mem == nil {
		return 0
	}
	return f.mem.SizeBytes()
}

func (f *hostFlash) EraseBlockBytes() uint32 { return memFlashEraseBlockBytes }

func (f *hostFlash) ReadAt(p []byte, off uint32) (int, error) {
	if f.mem == nil {
		return 0, ErrNotImplemented
	}
	return f.mem.ReadAt(p, off)
}

func (f *hostFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mem == nil {
		return 0, ErrNotImplemented
	}
	n, err := f.mem.WriteAt(p, off)
	if err != nil {
		return n, err
	}
	return n, f.sync(off, uint32(n))
}

func (f *hostFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mem == nil {
		return ErrNotImplemented
	}
	if err := f.mem.Erase(off, size); err != nil {
		return err
	}
	return f.sync(off, size)
}

func (f *hostFlash) sync(off, n uint32) error {
	f.mem.mu.Lock()
	chunk := f.mem.buf[off : off+n]
	_, err := f.f.WriteAt(chunk, int64(off))
	f.mem.mu.Unlock()
	if err != nil {
		return fmt.Errorf("flash sync at %d: %w", off, err)
	}
	return nil
}
