// Package settings loads the simulator's TOML settings file.
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings drives one simulator run.
type Settings struct {
	FlashPath string
	LogFile   string

	VTX      bool
	RCTuning bool

	// Taps is how many content passes a key press holds its gesture.
	Taps int

	VBat       uint16
	MinVBat    uint16
	DrainEvery uint32
	RSSI       uint16
	Load       uint16

	SerialPort   string
	SerialBaud   int
	PollInterval time.Duration
}

const (
	defaultSettingsPath = "~/.config/flightosd/osdsim.toml"
	defaultFlashPath    = "~/.local/share/flightosd/flash.bin"
	defaultBaud         = 115200
	defaultPoll         = 100 * time.Millisecond
)

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		FlashPath:    mustExpand(defaultFlashPath),
		VTX:          true,
		RCTuning:     true,
		Taps:         1,
		VBat:         126,
		MinVBat:      99,
		DrainEvery:   20,
		RSSI:         980,
		Load:         18,
		SerialBaud:   defaultBaud,
		PollInterval: defaultPoll,
	}
}

type rawSettings struct {
	FlashPath string `toml:"flash_path"`
	LogFile   string `toml:"log_file"`

	Features struct {
		VTX      *bool `toml:"vtx"`
		RCTuning *bool `toml:"rc_tuning"`
	} `toml:"features"`

	Input struct {
		Taps int `toml:"taps"`
	} `toml:"input"`

	Battery struct {
		VBat       uint16 `toml:"vbat"`
		MinVBat    uint16 `toml:"min_vbat"`
		DrainEvery uint32 `toml:"drain_every_s"`
	} `toml:"battery"`

	Link struct {
		RSSI uint16 `toml:"rssi"`
		Load uint16 `toml:"load"`
	} `toml:"link"`

	Serial struct {
		Port         string `toml:"port"`
		Baud         int    `toml:"baud"`
		PollInterval string `toml:"poll_interval"`
	} `toml:"serial"`
}

// Load reads the settings at path, or the default path when empty. A missing
// file yields Default.
func Load(path string) (Settings, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Settings{}, err
	}

	s := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var raw rawSettings
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	if p := strings.TrimSpace(raw.FlashPath); p != "" {
		s.FlashPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogFile); p != "" {
		s.LogFile = mustExpand(p)
	}
	if raw.Features.VTX != nil {
		s.VTX = *raw.Features.VTX
	}
	if raw.Features.RCTuning != nil {
		s.RCTuning = *raw.Features.RCTuning
	}
	if raw.Input.Taps > 0 {
		s.Taps = raw.Input.Taps
	}
	if raw.Battery.VBat > 0 {
		s.VBat = raw.Battery.VBat
	}
	if raw.Battery.MinVBat > 0 {
		s.MinVBat = raw.Battery.MinVBat
	}
	if raw.Battery.DrainEvery > 0 {
		s.DrainEvery = raw.Battery.DrainEvery
	}
	if raw.Link.RSSI > 0 {
		s.RSSI = raw.Link.RSSI
	}
	if raw.Link.Load > 0 {
		s.Load = raw.Link.Load
	}
	s.SerialPort = strings.TrimSpace(raw.Serial.Port)
	if raw.Serial.Baud > 0 {
		s.SerialBaud = raw.Serial.Baud
	}
	if iv := strings.TrimSpace(raw.Serial.PollInterval); iv != "" {
		d, err := time.ParseDuration(iv)
		if err != nil {
			return Settings{}, fmt.Errorf("parse serial.poll_interval: %w", err)
		}
		s.PollInterval = d
	}

	if s.MinVBat > s.VBat {
		return Settings{}, fmt.Errorf("battery.min_vbat %d above battery.vbat %d", s.MinVBat, s.VBat)
	}
	return s, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSettingsPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
