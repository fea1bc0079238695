package config

import (
	"encoding/binary"
	"errors"
	"fmt"

	"flightosd/hal"
)

var (
	// ErrNoConfig means the flash region is blank.
	ErrNoConfig = errors.New("no saved config")
	// ErrCorrupt means the flash region holds something other than a config record.
	ErrCorrupt = errors.New("corrupt config record")
)

const (
	recordMagic      = 0x4344534f // "OSDC" little-endian
	recordHeaderSize = 8
)

// FlashStore persists a Config as a framed TOML record at offset 0 of a flash
// device: magic, payload length, payload. Commit erases before writing.
type FlashStore struct {
	flash hal.Flash
	cfg   *Config
}

// NewFlashStore binds cfg to flash. cfg is the live struct; Commit saves
// whatever it holds at call time.
func NewFlashStore(flash hal.Flash, cfg *Config) *FlashStore {
	return &FlashStore{flash: flash, cfg: cfg}
}

// Config returns the live struct the store saves.
func (s *FlashStore) Config() *Config { return s.cfg }

// Commit durably saves the live configuration.
func (s *FlashStore) Commit() error {
	if s.flash == nil || s.cfg == nil {
		return hal.ErrNotImplemented
	}
	payload, err := Encode(*s.cfg)
	if err != nil {
		return err
	}

	rec := make([]byte, recordHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(rec[0:4], recordMagic)
	binary.LittleEndian.PutUint32(rec[4:8], uint32(len(payload)))
	copy(rec[recordHeaderSize:], payload)

	block := s.flash.EraseBlockBytes()
	if block == 0 {
		return fmt.Errorf("commit config: %w", hal.ErrNotImplemented)
	}
	size := (uint32(len(rec)) + block - 1) / block * block
	if size > s.flash.SizeBytes() {
		return fmt.Errorf("commit config: record %d bytes exceeds flash %d", len(rec), s.flash.SizeBytes())
	}
	if err := s.flash.Erase(0, size); err != nil {
		return fmt.Errorf("commit config: erase: %w", err)
	}
	if _, err := s.flash.WriteAt(rec, 0); err != nil {
		return fmt.Errorf("commit config: write: %w", err)
	}
	return nil
}

// Load replaces the live struct with the saved record.
func (s *FlashStore) Load() error {
	if s.flash == nil || s.cfg == nil {
		return hal.ErrNotImplemented
	}
	if size := s.flash.SizeBytes(); size < recordHeaderSize {
		return fmt.Errorf("load config: %w: flash holds %d bytes", ErrCorrupt, size)
	}
	var hdr [recordHeaderSize]byte
	if _, err := s.flash.ReadAt(hdr[:], 0); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	magic := binary.LittleEndian.Uint32(hdr[0:4])
	if magic == 0xFFFFFFFF {
		return ErrNoConfig
	}
	if magic != recordMagic {
		return fmt.Errorf("load config: %w: magic %#08x", ErrCorrupt, magic)
	}
	n := binary.LittleEndian.Uint32(hdr[4:8])
	if n > s.flash.SizeBytes()-recordHeaderSize {
		return fmt.Errorf("load config: %w: length %d", ErrCorrupt, n)
	}
	payload := make([]byte, n)
	if _, err := s.flash.ReadAt(payload, recordHeaderSize); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err := Decode(payload)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	*s.cfg = cfg
	return nil
}
