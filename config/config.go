// Package config holds the live flight configuration that the OSD menus edit
// in place, and the store that commits it to flash.
package config

// Axis indexes the per-axis PID and rate arrays.
type Axis int

const (
	Roll Axis = iota
	Pitch
	Yaw
	AxisCount
)

func (a Axis) String() string {
	switch a {
	case Roll:
		return "ROLL"
	case Pitch:
		return "PITCH"
	case Yaw:
		return "YAW"
	default:
		return "?"
	}
}

// Parameter limits. Every menu mutation saturates into these ranges.
const (
	IntGainMax   = 200
	FloatGainMax = 100.0

	RollPitchRateMax = 100
	YawRateMax       = 100

	RCRateMax = 250
	ExpoMax   = 100
	ThrMidMax = 100
	TPAMax    = 100

	PWMRangeMin = 1000
	PWMRangeMax = 2000

	VTXChannelCount = 40
)

// PIDController selects the controller implementation. It also decides which
// gain representation is live: integer-scaled or floating point.
type PIDController uint8

const (
	ControllerMW23 PIDController = iota
	ControllerMWRewrite
	ControllerLux
)

// FloatBased reports whether the controller reads the floating point gains.
func (c PIDController) FloatBased() bool { return c == ControllerLux }

func (c PIDController) String() string {
	switch c {
	case ControllerMW23:
		return "mw23"
	case ControllerMWRewrite:
		return "mwrewrite"
	case ControllerLux:
		return "lux"
	default:
		return "unknown"
	}
}

// ParseController maps a controller name to its value.
func ParseController(s string) (PIDController, bool) {
	for c := ControllerMW23; c <= ControllerLux; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// PIDProfile carries both gain representations; Controller picks one.
type PIDProfile struct {
	Controller PIDController

	P8 [AxisCount]uint8
	I8 [AxisCount]uint8
	D8 [AxisCount]uint8

	P [AxisCount]float32
	I [AxisCount]float32
	D [AxisCount]float32
}

// RateProfile holds stick feel and throttle PID attenuation settings.
type RateProfile struct {
	Rates [AxisCount]uint8

	RCRate        uint8
	RCExpo        uint8
	RCYawExpo     uint8
	ThrMid        uint8
	ThrExpo       uint8
	TPARate       uint8
	TPABreakpoint uint16
}

// Config is the live configuration shared with the rest of the firmware.
type Config struct {
	PID   PIDProfile
	Rates RateProfile

	// BatteryWarning is the low-voltage threshold in deci-volts.
	BatteryWarning uint16
	// VTXChannel is the saved 0-based index into the 5x8 VTX frequency table.
	VTXChannel uint8
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		PID: PIDProfile{
			Controller: ControllerMWRewrite,
			P8:         [AxisCount]uint8{40, 40, 85},
			I8:         [AxisCount]uint8{30, 30, 45},
			D8:         [AxisCount]uint8{23, 23, 0},
			P:          [AxisCount]float32{1.5, 1.5, 4.0},
			I:          [AxisCount]float32{0.4, 0.4, 0.4},
			D:          [AxisCount]float32{0.03, 0.03, 0.01},
		},
		Rates: RateProfile{
			RCRate:        90,
			RCExpo:        65,
			ThrMid:        50,
			TPABreakpoint: 1500,
		},
		BatteryWarning: 105,
	}
}

// RateMax returns the upper rate limit for axis.
func RateMax(a Axis) uint8 {
	if a == Yaw {
		return YawRateMax
	}
	return RollPitchRateMax
}
