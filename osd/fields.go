package osd

import (
	"math"
	"strconv"

	"flightosd/config"
	"flightosd/vtx"
)

// Per-column step and display scale of floating point gains.
var floatGainSteps = [MaxColumns]float64{0.1, 0.01, 0.001}

// pidField edits one axis of the PID profile. The controller flag decides on
// every call whether the integer or the floating point gains are live.
type pidField struct {
	pid  *config.PIDProfile
	axis config.Axis
}

func (f pidField) Text(col int) (string, bool) {
	if col < 0 || col >= MaxColumns {
		return "", false
	}
	if f.pid.Controller.FloatBased() {
		v := f.floatGain(col)
		return strconv.Itoa(int(math.Round(float64(*v) / floatGainSteps[col]))), true
	}
	return strconv.Itoa(int(*f.intGain(col))), true
}

func (f pidField) Adjust(increase bool, col int) {
	if col < 0 || col >= MaxColumns {
		return
	}
	if f.pid.Controller.FloatBased() {
		v := f.floatGain(col)
		*v = stepFloat(*v, floatGainSteps[col], increase)
		return
	}
	v := f.intGain(col)
	*v = stepUint8(*v, 0, config.IntGainMax, 1, increase)
}

func (f pidField) intGain(col int) *uint8 {
	switch col {
	case 0:
		return &f.pid.P8[f.axis]
	case 1:
		return &f.pid.I8[f.axis]
	default:
		return &f.pid.D8[f.axis]
	}
}

func (f pidField) floatGain(col int) *float32 {
	switch col {
	case 0:
		return &f.pid.P[f.axis]
	case 1:
		return &f.pid.I[f.axis]
	default:
		return &f.pid.D[f.axis]
	}
}

// rateField edits an axis rate limit in column 0.
type rateField struct {
	rates *config.RateProfile
	axis  config.Axis
}

func (f rateField) Text(col int) (string, bool) {
	if col != 0 {
		return "", false
	}
	return strconv.Itoa(int(f.rates.Rates[f.axis])), true
}

func (f rateField) Adjust(increase bool, col int) {
	if col != 0 {
		return
	}
	v := &f.rates.Rates[f.axis]
	*v = stepUint8(*v, 0, config.RateMax(f.axis), 1, increase)
}

// uint8Field edits a bounded byte setting in column 0.
type uint8Field struct {
	v        *uint8
	min, max uint8
}

func (f uint8Field) Text(col int) (string, bool) {
	if col != 0 {
		return "", false
	}
	return strconv.Itoa(int(*f.v)), true
}

func (f uint8Field) Adjust(increase bool, col int) {
	if col != 0 {
		return
	}
	*f.v = stepUint8(*f.v, f.min, f.max, 1, increase)
}

// uint16Field edits a bounded 16-bit setting in column 0.
type uint16Field struct {
	v              *uint16
	min, max, step uint16
}

func (f uint16Field) Text(col int) (string, bool) {
	if col != 0 {
		return "", false
	}
	return strconv.Itoa(int(*f.v)), true
}

func (f uint16Field) Adjust(increase bool, col int) {
	if col != 0 {
		return
	}
	v := int(*f.v)
	if increase {
		v += int(f.step)
	} else {
		v -= int(f.step)
	}
	*f.v = uint16(clampInt(v, int(f.min), int(f.max)))
}

// statusField shows a computed value in column 0.
type statusField func() string

func (f statusField) Text(col int) (string, bool) {
	if col != 0 {
		return "", false
	}
	return f(), true
}

// vtxBandField steps the pending channel across bands.
type vtxBandField struct{ ch *vtx.Channel }

func (f vtxBandField) Text(col int) (string, bool) {
	if col != 0 {
		return "", false
	}
	return f.ch.BandName(), true
}

func (f vtxBandField) Adjust(increase bool, col int) {
	if col != 0 {
		return
	}
	*f.ch = f.ch.StepBand(increase)
}

// vtxSlotField steps the pending channel within its band; shown 1-based.
type vtxSlotField struct{ ch *vtx.Channel }

func (f vtxSlotField) Text(col int) (string, bool) {
	if col != 0 {
		return "", false
	}
	return strconv.Itoa(f.ch.Slot() + 1), true
}

func (f vtxSlotField) Adjust(increase bool, col int) {
	if col != 0 {
		return
	}
	*f.ch = f.ch.StepSlot(increase)
}

func stepUint8(v, min, max, step uint8, increase bool) uint8 {
	n := int(v)
	if increase {
		n += int(step)
	} else {
		n -= int(step)
	}
	return uint8(clampInt(n, int(min), int(max)))
}

// stepFloat moves v by exactly step, then rounds to a grid a thousand times
// finer than step so repeated steps do not accumulate float error.
func stepFloat(v float32, step float64, increase bool) float32 {
	x := float64(v)
	if math.IsNaN(x) {
		x = 0
	}
	if increase {
		x += step
	} else {
		x -= step
	}
	fine := step / 1000
	x = math.Round(x/fine) * fine
	if x < 0 {
		x = 0
	}
	if x > config.FloatGainMax {
		x = config.FloatGainMax
	}
	return float32(x)
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
