package app

import (
	"fmt"
	"strings"

	"flightosd/hal"
	"flightosd/osd"
)

// ScriptStep is one content pass of a scripted run.
type ScriptStep struct {
	Gesture osd.Gesture
	Arm     bool
	Disarm  bool
}

// ParseScript reads a comma separated list of gesture names plus "wait",
// "arm" and "disarm". Each entry lasts one content pass.
func ParseScript(s string) ([]ScriptStep, error) {
	var steps []ScriptStep
	for i, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		switch tok {
		case "":
			continue
		case "wait":
			steps = append(steps, ScriptStep{})
		case "arm":
			steps = append(steps, ScriptStep{Arm: true})
		case "disarm":
			steps = append(steps, ScriptStep{Disarm: true})
		default:
			g, ok := osd.ParseGesture(tok)
			if !ok {
				return nil, fmt.Errorf("script entry %d: unknown step %q", i+1, tok)
			}
			steps = append(steps, ScriptStep{Gesture: g})
		}
	}
	return steps, nil
}

// RunScript plays steps against s, moving clock by one macro-tick per
// engine pass. s must have been built on clock and must not have run yet.
func (s *System) RunScript(clock *hal.ManualClock, steps []ScriptStep) error {
	passes := s.Sticks.Taps()
	for _, st := range steps {
		switch {
		case st.Arm:
			s.Flight.SetArmed(true)
		case st.Disarm:
			s.Flight.SetArmed(false)
		}
		if st.Gesture != 0 {
			s.Sticks.Hold(st.Gesture)
		}
		for i := 0; i < passes; i++ {
			// content pass, then flush pass
			for j := 0; j < 2; j++ {
				if err := s.Step(); err != nil {
					return err
				}
				clock.Advance(osd.UpdatePeriodMicros)
			}
		}
	}
	return nil
}
