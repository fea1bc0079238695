package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Load(filepath.Join(home, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !s.VTX || !s.RCTuning {
		t.Fatalf("features = vtx %v rc %v, want both on", s.VTX, s.RCTuning)
	}
	if !strings.HasPrefix(s.FlashPath, home) {
		t.Fatalf("FlashPath = %q, want it under HOME %q", s.FlashPath, home)
	}
	if s.SerialBaud != defaultBaud || s.PollInterval != defaultPoll {
		t.Fatalf("serial = %d %v", s.SerialBaud, s.PollInterval)
	}
}

func TestLoad_ParsesSections(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "osdsim.toml")
	if err := os.WriteFile(path, []byte(`
flash_path = "  ~/osd/flash.bin "

[features]
vtx = false

[input]
taps = 3

[battery]
vbat = 168
min_vbat = 132

[serial]
port = "/dev/ttyACM0"
poll_interval = "250ms"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.FlashPath != filepath.Join(home, "osd", "flash.bin") {
		t.Fatalf("FlashPath = %q", s.FlashPath)
	}
	if s.VTX || !s.RCTuning {
		t.Fatalf("features = vtx %v rc %v, want vtx off, rc on", s.VTX, s.RCTuning)
	}
	if s.Taps != 3 || s.VBat != 168 || s.MinVBat != 132 {
		t.Fatalf("taps=%d vbat=%d min=%d", s.Taps, s.VBat, s.MinVBat)
	}
	if s.DrainEvery != Default().DrainEvery {
		t.Fatalf("DrainEvery = %d, want default", s.DrainEvery)
	}
	if s.SerialPort != "/dev/ttyACM0" || s.PollInterval != 250*time.Millisecond {
		t.Fatalf("serial = %q %v", s.SerialPort, s.PollInterval)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"duration": "[serial]\npoll_interval = \"soon\"\n",
		"battery":  "[battery]\nvbat = 100\nmin_vbat = 110\n",
		"syntax":   "flash_path = \n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), name+".toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: Load accepted %q", name, body)
		}
	}
}
