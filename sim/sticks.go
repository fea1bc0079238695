// Package sim stands in for the flight controller around the OSD: stick
// input from a keyboard, a battery and radio model, and a VTX.
package sim

import (
	"flightosd/config"
	"flightosd/hal"
	"flightosd/osd"
)

// StickEmulator turns key presses into stick positions.
//
// With Latching set, a named key holds its gesture from press to release, so
// a held key auto-repeats like a held stick. Character keys, and every key
// when Latching is off, hold the gesture for a fixed number of samples;
// terminals and text input never report releases.
type StickEmulator struct {
	Latching bool

	taps      int
	gesture   osd.Gesture
	key       hal.KeyEvent
	latched   bool
	remaining int
	throttle  uint8
}

// NewStickEmulator starts with sticks centered and throttle low. taps is the
// number of samples a non-latching press lasts; values below 1 mean 1.
func NewStickEmulator(taps int) *StickEmulator {
	if taps < 1 {
		taps = 1
	}
	return &StickEmulator{taps: taps}
}

var keyGestures = map[hal.KeyCode]osd.Gesture{
	hal.KeyUp:        osd.GestureUp,
	hal.KeyDown:      osd.GestureDown,
	hal.KeyLeft:      osd.GestureLeft,
	hal.KeyRight:     osd.GestureRight,
	hal.KeyEnter:     osd.GestureSelect,
	hal.KeySpace:     osd.GestureSelect,
	hal.KeyBackspace: osd.GestureBack,
	hal.KeyEscape:    osd.GestureBack,
}

var runeGestures = map[rune]osd.Gesture{
	'm': osd.GestureEnterMenu,
	'k': osd.GestureUp,
	'j': osd.GestureDown,
	'h': osd.GestureLeft,
	'l': osd.GestureRight,
	'+': osd.GestureSelect,
	'-': osd.GestureBack,
}

// HandleKey applies a key event. It reports whether the key was used.
func (s *StickEmulator) HandleKey(ev hal.KeyEvent) bool {
	if !ev.Press {
		if s.latched && sameKey(ev, s.key) {
			s.Release()
		}
		return false
	}
	switch ev.Rune {
	case 'w':
		s.throttle = uint8(min(int(s.throttle)+10, 100))
		return true
	case 's':
		s.throttle = uint8(max(int(s.throttle)-10, 0))
		return true
	}
	g, ok := keyGestures[ev.Code]
	if ev.Code == hal.KeyUnknown {
		g, ok = runeGestures[ev.Rune]
	}
	if !ok {
		return false
	}
	s.key = ev
	s.Hold(g)
	s.latched = s.Latching && ev.Code != hal.KeyUnknown
	return true
}

func sameKey(a, b hal.KeyEvent) bool {
	return a.Code == b.Code && (a.Code != hal.KeyUnknown || a.Rune == b.Rune)
}

// Hold forces g for the next taps samples.
func (s *StickEmulator) Hold(g osd.Gesture) {
	s.gesture = g
	s.remaining = s.taps
	s.latched = false
}

// Release returns the sticks to rest.
func (s *StickEmulator) Release() {
	s.gesture = 0
	s.remaining = 0
	s.latched = false
}

// Taps returns how many samples a non-latching press lasts.
func (s *StickEmulator) Taps() int { return s.taps }

// Active returns the gesture the next sample will show.
func (s *StickEmulator) Active() osd.Gesture { return s.gesture }

// Throttle returns the resting throttle in percent.
func (s *StickEmulator) Throttle() uint8 { return s.throttle }

// SetThrottle sets the resting throttle, clamped to 100.
func (s *StickEmulator) SetThrottle(pct uint8) { s.throttle = min(pct, 100) }

// Sample returns PWM values in stick order and consumes one tap.
func (s *StickEmulator) Sample() [osd.StickCount]uint16 {
	st := osd.Sticks{50, 50, 50, s.throttle}
	if s.gesture != 0 {
		st = osd.SticksFor(s.gesture)
		if !s.latched {
			s.remaining--
			if s.remaining <= 0 {
				s.gesture = 0
			}
		}
	}
	var ch [osd.StickCount]uint16
	for i, v := range st {
		ch[i] = uint16(config.PWMRangeMin + int(v)*(config.PWMRangeMax-config.PWMRangeMin)/100)
	}
	return ch
}
