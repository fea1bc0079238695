//go:build !tinygo

package hal

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMemFlashEraseBeforeWrite(t *testing.T) {
	f := NewMemFlash(5000)
	if f.SizeBytes() != 8192 {
		t.Fatalf("SizeBytes() = %d, want 8192", f.SizeBytes())
	}

	if _, err := f.WriteAt([]byte{0x0F, 0x00}, 100); err != nil {
		t.Fatalf("WriteAt on erased flash: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xF0}, 100); !errors.Is(err, ErrFlashWriteRequiresErase) {
		t.Fatalf("WriteAt over programmed bits = %v, want ErrFlashWriteRequiresErase", err)
	}
	// Clearing more bits is allowed without an erase.
	if _, err := f.WriteAt([]byte{0x01}, 100); err != nil {
		t.Fatalf("WriteAt clearing bits: %v", err)
	}

	if err := f.Erase(0, 4096); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	var b [1]byte
	if _, err := f.ReadAt(b[:], 100); err != nil || b[0] != 0xFF {
		t.Fatalf("after erase byte = %#x, %v, want 0xff", b[0], err)
	}
	if err := f.Erase(10, 4096); err == nil {
		t.Fatalf("expected unaligned erase to fail")
	}
	if err := f.Erase(4096, 8192); err == nil {
		t.Fatalf("expected erase past the end to fail")
	}
}

func TestHostFlashPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.bin")

	f := newHostFlash(path)
	if f.SizeBytes() != hostFlashDefaultSizeBytes {
		t.Fatalf("SizeBytes() = %d, want %d", f.SizeBytes(), hostFlashDefaultSizeBytes)
	}
	if err := f.Erase(0, 4096); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, err := f.WriteAt([]byte("osd"), 8); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	f.(*hostFlash).f.Close()

	again := newHostFlash(path)
	got := make([]byte, 3)
	if _, err := again.ReadAt(got, 8); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(got) != "osd" {
		t.Fatalf("reopened flash = %q, want %q", got, "osd")
	}
	again.(*hostFlash).f.Close()
}

func TestHostFlashUnopenable(t *testing.T) {
	f := newHostFlash(filepath.Join(t.TempDir(), "missing", "flash.bin"))
	if f.SizeBytes() != 0 {
		t.Fatalf("SizeBytes() = %d, want 0", f.SizeBytes())
	}
	if _, err := f.WriteAt([]byte{0}, 0); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("WriteAt = %v, want ErrNotImplemented", err)
	}
}
