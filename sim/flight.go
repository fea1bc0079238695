package sim

import (
	"flightosd/hal"
	"flightosd/osd"
)

// FlightConfig seeds the sensor model.
type FlightConfig struct {
	VBat       uint16 // deci-volts at rest
	MinVBat    uint16 // floor of the discharge curve
	DrainEvery uint32 // seconds of full throttle per deci-volt
	RSSI       uint16
	Load       uint16
}

// DefaultFlightConfig is a fresh 3S pack on a good link.
func DefaultFlightConfig() FlightConfig {
	return FlightConfig{VBat: 126, MinVBat: 99, DrainEvery: 20, RSSI: 980, Load: 18}
}

// Flight is a deterministic flight controller model. Battery sag follows the
// armed time and throttle; RSSI dips while flying.
type Flight struct {
	cfg    FlightConfig
	clock  hal.Clock
	sticks *StickEmulator
	log    hal.Logger

	armed      bool
	lastMicros uint32
	drained    uint64 // deci-volt micro-seconds at full throttle
}

// NewFlight reads the sticks from s.
func NewFlight(cfg FlightConfig, clock hal.Clock, s *StickEmulator, log hal.Logger) *Flight {
	if cfg.DrainEvery == 0 {
		cfg.DrainEvery = DefaultFlightConfig().DrainEvery
	}
	return &Flight{cfg: cfg, clock: clock, sticks: s, log: log, lastMicros: clock.Micros()}
}

// HandleKey toggles arming on 'a' and passes the rest to the sticks.
func (f *Flight) HandleKey(ev hal.KeyEvent) bool {
	if ev.Press && ev.Rune == 'a' {
		f.SetArmed(!f.armed)
		return true
	}
	return f.sticks.HandleKey(ev)
}

// SetArmed changes the arm switch.
func (f *Flight) SetArmed(armed bool) {
	if f.armed == armed {
		return
	}
	f.advance()
	f.armed = armed
	if armed {
		f.sticks.Release()
	}
	hal.Logf(f.log, "sim: arm switch %v", armed)
}

// Armed reports the arm switch.
func (f *Flight) Armed() bool { return f.armed }

func (f *Flight) advance() {
	now := f.clock.Micros()
	dt := now - f.lastMicros
	f.lastMicros = now
	if f.armed {
		f.drained += uint64(dt) * uint64(f.sticks.Throttle()+10) / 110
	}
}

// Sample implements osd.Sensors.
func (f *Flight) Sample() osd.Telemetry {
	f.advance()

	tel := osd.Telemetry{
		Channels:   f.sticks.Sample(),
		Armed:      f.armed,
		RSSI:       f.cfg.RSSI,
		SystemLoad: f.cfg.Load,
	}

	sag := f.drained / (uint64(f.cfg.DrainEvery) * 1000000)
	tel.VBat = f.cfg.VBat
	if f.cfg.VBat > f.cfg.MinVBat {
		tel.VBat = f.cfg.VBat - uint16(min(sag, uint64(f.cfg.VBat-f.cfg.MinVBat)))
	}

	if f.armed {
		thr := uint16(f.sticks.Throttle())
		tel.SystemLoad += thr / 4
		tel.RSSI -= min(tel.RSSI, thr*2)
	}
	return tel
}
