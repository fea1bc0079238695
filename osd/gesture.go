package osd

import (
	"strings"

	"flightosd/config"
)

// Stick channels in sampling order.
const (
	StickRoll = iota
	StickPitch
	StickYaw
	StickThrottle
	StickCount
)

// Sticks holds the four stick positions normalized to [0,100].
type Sticks [StickCount]uint8

// NormalizeChannel maps a raw PWM channel reading onto [0,100].
func NormalizeChannel(pwm uint16) uint8 {
	v := int(pwm)
	if v < config.PWMRangeMin {
		v = config.PWMRangeMin
	}
	if v > config.PWMRangeMax {
		v = config.PWMRangeMax
	}
	return uint8((v - config.PWMRangeMin) * 100 / (config.PWMRangeMax - config.PWMRangeMin))
}

// Gesture is a set of recognized stick gestures. Several can hold at once.
type Gesture uint8

const (
	GestureEnterMenu Gesture = 1 << iota
	GestureSelect
	GestureBack
	GestureUp
	GestureDown
	GestureRight
	GestureLeft
)

// Has reports whether every gesture in x is present in g.
func (g Gesture) Has(x Gesture) bool { return g&x == x && x != 0 }

var gestureNames = []struct {
	g    Gesture
	name string
}{
	{GestureEnterMenu, "menu"},
	{GestureSelect, "select"},
	{GestureBack, "back"},
	{GestureUp, "up"},
	{GestureDown, "down"},
	{GestureRight, "right"},
	{GestureLeft, "left"},
}

func (g Gesture) String() string {
	if g == 0 {
		return "none"
	}
	var parts []string
	for _, n := range gestureNames {
		if g.Has(n.g) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseGesture maps a single gesture name as printed by String.
func ParseGesture(s string) (Gesture, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range gestureNames {
		if n.name == s {
			return n.g, true
		}
	}
	return 0, false
}

func high(v uint8) bool     { return v > 90 }
func low(v uint8) bool      { return v < 10 }
func centered(v uint8) bool { return v > 10 && v < 90 }

// DecodeGestures evaluates every gesture against s. Whether EnterMenu may act
// (disarmed, not already in a menu) is for the caller to decide.
func DecodeGestures(s Sticks) Gesture {
	roll, pitch, yaw, thr := s[StickRoll], s[StickPitch], s[StickYaw], s[StickThrottle]

	var g Gesture
	if low(yaw) && centered(thr) && centered(roll) && high(pitch) {
		g |= GestureEnterMenu
	}
	if high(yaw) && centered(roll) && centered(pitch) {
		g |= GestureSelect
	}
	if low(yaw) && centered(roll) && centered(pitch) {
		g |= GestureBack
	}
	if high(pitch) && centered(yaw) {
		g |= GestureUp
	}
	if low(pitch) && centered(yaw) {
		g |= GestureDown
	}
	if high(roll) && centered(yaw) {
		g |= GestureRight
	}
	if low(roll) && centered(yaw) {
		g |= GestureLeft
	}
	return g
}

// SticksFor returns a stick position that produces exactly g. Only single
// gestures are supported; anything else yields centered sticks.
func SticksFor(g Gesture) Sticks {
	s := Sticks{50, 50, 50, 50}
	switch g {
	case GestureEnterMenu:
		s[StickYaw] = 5
		s[StickPitch] = 95
	case GestureSelect:
		s[StickYaw] = 95
	case GestureBack:
		s[StickYaw] = 5
	case GestureUp:
		s[StickPitch] = 95
	case GestureDown:
		s[StickPitch] = 5
	case GestureRight:
		s[StickRoll] = 95
	case GestureLeft:
		s[StickRoll] = 5
	}
	return s
}
