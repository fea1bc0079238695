package config

import (
	"fmt"
	"math"

	toml "github.com/pelletier/go-toml/v2"
)

type pidRecord struct {
	Controller string    `toml:"controller"`
	P8         []int     `toml:"p8"`
	I8         []int     `toml:"i8"`
	D8         []int     `toml:"d8"`
	P          []float64 `toml:"p"`
	I          []float64 `toml:"i"`
	D          []float64 `toml:"d"`
}

type rateRecord struct {
	Rates         []int `toml:"rates"`
	RCRate        int   `toml:"rc_rate"`
	RCExpo        int   `toml:"rc_expo"`
	RCYawExpo     int   `toml:"rc_yaw_expo"`
	ThrMid        int   `toml:"thr_mid"`
	ThrExpo       int   `toml:"thr_expo"`
	TPARate       int   `toml:"tpa_rate"`
	TPABreakpoint int   `toml:"tpa_breakpoint"`
}

type record struct {
	PID            pidRecord  `toml:"pid"`
	Rates          rateRecord `toml:"rates"`
	BatteryWarning int        `toml:"battery_warning"`
	VTXChannel     int        `toml:"vtx_channel"`
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	b, err := toml.Marshal(toRecord(cfg))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return b, nil
}

func toRecord(cfg Config) record {
	return record{
		PID: pidRecord{
			Controller: cfg.PID.Controller.String(),
			P8:         ints(cfg.PID.P8),
			I8:         ints(cfg.PID.I8),
			D8:         ints(cfg.PID.D8),
			P:          floats(cfg.PID.P),
			I:          floats(cfg.PID.I),
			D:          floats(cfg.PID.D),
		},
		Rates: rateRecord{
			Rates:         ints(cfg.Rates.Rates),
			RCRate:        int(cfg.Rates.RCRate),
			RCExpo:        int(cfg.Rates.RCExpo),
			RCYawExpo:     int(cfg.Rates.RCYawExpo),
			ThrMid:        int(cfg.Rates.ThrMid),
			ThrExpo:       int(cfg.Rates.ThrExpo),
			TPARate:       int(cfg.Rates.TPARate),
			TPABreakpoint: int(cfg.Rates.TPABreakpoint),
		},
		BatteryWarning: int(cfg.BatteryWarning),
		VTXChannel:     int(cfg.VTXChannel),
	}
}

// Decode parses TOML produced by Encode or written by hand. Missing fields
// keep their defaults; out-of-range values are clamped so the menus never see
// a value outside its documented range.
func Decode(b []byte) (Config, error) {
	def := Default()
	rec := toRecord(def)
	if err := toml.Unmarshal(b, &rec); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	ctrl, ok := ParseController(rec.PID.Controller)
	if !ok {
		return Config{}, fmt.Errorf("parse config: unknown pid controller %q", rec.PID.Controller)
	}

	cfg := def
	cfg.PID.Controller = ctrl
	cfg.PID.P8 = u8s(rec.PID.P8, def.PID.P8, IntGainMax)
	cfg.PID.I8 = u8s(rec.PID.I8, def.PID.I8, IntGainMax)
	cfg.PID.D8 = u8s(rec.PID.D8, def.PID.D8, IntGainMax)
	cfg.PID.P = f32s(rec.PID.P, def.PID.P)
	cfg.PID.I = f32s(rec.PID.I, def.PID.I)
	cfg.PID.D = f32s(rec.PID.D, def.PID.D)

	for a := Roll; a < AxisCount && int(a) < len(rec.Rates.Rates); a++ {
		cfg.Rates.Rates[a] = uint8(clampInt(rec.Rates.Rates[a], 0, int(RateMax(a))))
	}
	cfg.Rates.RCRate = uint8(clampInt(rec.Rates.RCRate, 0, RCRateMax))
	cfg.Rates.RCExpo = uint8(clampInt(rec.Rates.RCExpo, 0, ExpoMax))
	cfg.Rates.RCYawExpo = uint8(clampInt(rec.Rates.RCYawExpo, 0, ExpoMax))
	cfg.Rates.ThrMid = uint8(clampInt(rec.Rates.ThrMid, 0, ThrMidMax))
	cfg.Rates.ThrExpo = uint8(clampInt(rec.Rates.ThrExpo, 0, ExpoMax))
	cfg.Rates.TPARate = uint8(clampInt(rec.Rates.TPARate, 0, TPAMax))
	cfg.Rates.TPABreakpoint = uint16(clampInt(rec.Rates.TPABreakpoint, PWMRangeMin, PWMRangeMax))

	cfg.BatteryWarning = uint16(clampInt(rec.BatteryWarning, 0, 0xFFFF))
	cfg.VTXChannel = uint8(clampInt(rec.VTXChannel, 0, VTXChannelCount-1))
	return cfg, nil
}

func ints(a [AxisCount]uint8) []int {
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	return out
}

func floats(a [AxisCount]float32) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = float64(v)
	}
	return out
}

func u8s(src []int, def [AxisCount]uint8, max int) [AxisCount]uint8 {
	out := def
	for i := 0; i < len(src) && i < len(out); i++ {
		out[i] = uint8(clampInt(src[i], 0, max))
	}
	return out
}

func f32s(src []float64, def [AxisCount]float32) [AxisCount]float32 {
	out := def
	for i := 0; i < len(src) && i < len(out); i++ {
		v := src[i]
		if math.IsNaN(v) {
			continue
		}
		if v < 0 {
			v = 0
		}
		if v > FloatGainMax {
			v = FloatGainMax
		}
		out[i] = float32(v)
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
