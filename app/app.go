package app

import (
	"errors"

	"flightosd/config"
	"flightosd/hal"
	"flightosd/osd"
	"flightosd/screen"
	"flightosd/sim"
	"flightosd/vtx"
)

// Config selects the optional parts of the system.
type Config struct {
	VTX      bool
	RCTuning bool

	// Taps is how many content passes a key press lasts when Latching is off.
	Taps int
	// Latching holds a gesture from key press to release.
	Latching bool

	Flight sim.FlightConfig

	// Sensors replaces the simulated flight when set, e.g. with an MSP link.
	// Keys still drive the menu only through the simulated sticks.
	Sensors osd.Sensors
}

// System is the wired OSD: engine, character grid, simulated flight
// controller and config storage.
type System struct {
	h hal.HAL

	Config *config.Config
	Store  *config.FlashStore
	Grid   *screen.Grid
	Sticks *sim.StickEmulator
	Flight *sim.Flight
	VTX    *sim.VTX
	Engine *osd.Engine

	raster *screen.Rasterizer
	keys   <-chan hal.KeyEvent
}

// New loads the saved configuration and builds the engine.
func New(h hal.HAL, cfg Config) *System {
	log := h.Logger()

	live := config.Default()
	store := config.NewFlashStore(h.Flash(), &live)
	switch err := store.Load(); {
	case err == nil:
		hal.Logf(log, "config: loaded from flash")
	case errors.Is(err, config.ErrNoConfig):
		hal.Logf(log, "config: flash blank, using defaults")
	default:
		live = config.Default()
		hal.Logf(log, "config: %v, using defaults", err)
	}

	s := &System{
		h:      h,
		Config: &live,
		Store:  store,
		Grid:   screen.NewGrid(),
		Sticks: sim.NewStickEmulator(cfg.Taps),
	}
	s.Sticks.Latching = cfg.Latching
	s.Flight = sim.NewFlight(cfg.Flight, h.Clock(), s.Sticks, log)

	var sensors osd.Sensors = s.Flight
	if cfg.Sensors != nil {
		sensors = cfg.Sensors
	}

	var driver vtx.Driver
	if cfg.VTX {
		s.VTX = sim.NewVTX(log)
		driver = s.VTX
	}

	s.Engine = osd.New(osd.Options{
		Config:   s.Config,
		Display:  s.Grid,
		Sensors:  sensors,
		Clock:    h.Clock(),
		Store:    store,
		VTX:      driver,
		Logger:   log,
		RCTuning: cfg.RCTuning,
	})
	s.Engine.Init()

	if fb := h.Framebuffer(); fb != nil {
		s.raster = screen.NewRasterizer(fb)
	}
	if kb := h.Keyboard(); kb != nil {
		s.keys = kb.Events()
	}
	return s
}

// HandleKey feeds a key to the simulated flight controller.
func (s *System) HandleKey(ev hal.KeyEvent) bool { return s.Flight.HandleKey(ev) }

// Tick drains pending keys and runs the engine once.
func (s *System) Tick() {
	for {
		select {
		case ev := <-s.keys:
			s.HandleKey(ev)
			continue
		default:
		}
		break
	}
	s.Engine.Update()
}

// Step is the per-frame function for the host runners: Tick plus drawing the
// grid onto the framebuffer when a new frame was flushed.
func (s *System) Step() error {
	s.Tick()
	if s.raster == nil {
		return nil
	}
	_, err := s.raster.Draw(s.Grid)
	return err
}

// Text returns the last flushed OSD frame.
func (s *System) Text(glyphs screen.Glyphs) string { return s.Grid.Text(glyphs) }
