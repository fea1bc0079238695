package osd

import (
	"flightosd/config"
	"flightosd/hal"
	"flightosd/vtx"
)

const (
	// UpdatePeriodMicros is the minimum spacing of two macro-ticks.
	UpdatePeriodMicros = 200000
	// ArmedFlashTicks is how many times ARMED is shown after arming.
	ArmedFlashTicks = 5
)

// Telemetry is one reading of the flight controller state.
type Telemetry struct {
	// Channels holds raw PWM readings in Sticks order.
	Channels   [StickCount]uint16
	VBat       uint16 // deci-volts
	RSSI       uint16
	Armed      bool
	SystemLoad uint16 // percent
}

// Sensors supplies telemetry. Sample must not block.
type Sensors interface {
	Sample() Telemetry
}

// Store persists the live configuration.
type Store interface {
	Commit() error
}

// Options configures an Engine. Config, Display, Sensors and Clock are
// required; VTX, Store and Logger may be nil.
type Options struct {
	Config  *config.Config
	Display Display
	Sensors Sensors
	Clock   hal.Clock
	Store   Store
	VTX     vtx.Driver
	Logger  hal.Logger

	// RCTuning adds the RC RATES page.
	RCTuning bool
}

// Engine owns all OSD state. Update must be called from a single goroutine.
type Engine struct {
	cfg     *config.Config
	display Display
	sensors Sensors
	clock   hal.Clock
	store   Store
	vtx     vtx.Driver
	log     hal.Logger

	menu menu

	tel        Telemetry
	sticks     Sticks
	vtxChannel vtx.Channel

	nextUpdateAt uint32
	skip         uint8
	blink        bool
	armed        bool
	armedAt      uint32
	armedSeconds uint32
	armingFlash  uint8
}

// New builds an engine and its page catalog. The first Update call renders.
func New(opts Options) *Engine {
	e := &Engine{
		cfg:     opts.Config,
		display: opts.Display,
		sensors: opts.Sensors,
		clock:   opts.Clock,
		store:   opts.Store,
		vtx:     opts.VTX,
		log:     opts.Logger,
	}
	e.vtxChannel = vtx.Channel(e.cfg.VTXChannel)
	e.menu.pages = e.buildPages(opts.RCTuning)
	e.menu.cursor = ToolbarCursor{Slot: SlotPage}
	e.nextUpdateAt = e.clock.Micros()
	return e
}

// Init brings up the VTX and tunes the saved channel.
func (e *Engine) Init() {
	if e.vtx == nil {
		return
	}
	e.vtx.Init()
	e.vtxChannel = vtx.Channel(e.cfg.VTXChannel)
	e.vtx.SetChannel(e.vtxChannel.Frequency())
	hal.Logf(e.log, "osd: vtx %s ch %d %d MHz", e.vtxChannel.BandName(), e.vtxChannel.Slot()+1, e.vtxChannel.Frequency())
}

// Update runs one macro-tick if the deadline has passed. Content passes
// alternate with flush passes.
func (e *Engine) Update() {
	now := e.clock.Micros()
	if int32(now-e.nextUpdateAt) < 0 {
		return
	}
	e.nextUpdateAt = now + UpdatePeriodMicros

	pass := e.skip
	e.skip ^= 1
	if pass&1 != 0 {
		e.display.DrawScreenNonBlocking()
		return
	}
	e.blink = !e.blink
	e.tel = e.sensors.Sample()

	if e.tel.Armed {
		if !e.armed {
			e.armed = true
			e.armedAt = now
			e.armingFlash = ArmedFlashTicks
			if e.menu.active {
				e.menu.active = false
				hal.Logf(e.log, "osd: menu closed by arming")
			}
			hal.Logf(e.log, "osd: armed")
		}
	} else {
		if e.armed {
			e.armed = false
			flown := (now - e.armedAt) / 1000000
			e.armedSeconds += flown
			hal.Logf(e.log, "osd: disarmed after %ds, total %ds", flown, e.armedSeconds)
		}
		for i := range e.sticks {
			e.sticks[i] = NormalizeChannel(e.tel.Channels[i])
		}
		g := DecodeGestures(e.sticks)
		if e.menu.active {
			e.handleMenu(g)
		} else if g.Has(GestureEnterMenu) {
			e.menu.enter()
			hal.Logf(e.log, "osd: menu opened on %s", e.menu.current().Title)
		}
	}

	if e.menu.active {
		e.menu.draw(e.display)
	} else {
		e.drawOverlay(now)
	}
}

func (e *Engine) handleMenu(g Gesture) {
	page := e.menu.page
	switch e.menu.apply(g) {
	case actionExit:
		e.menu.active = false
		hal.Logf(e.log, "osd: menu closed")
	case actionSave:
		e.menu.active = false
		e.save()
	}
	if e.menu.page != page {
		hal.Logf(e.log, "osd: page %d %s", e.menu.page, e.menu.current().Title)
	}
}

func (e *Engine) save() {
	if e.vtx != nil && uint8(e.vtxChannel) != e.cfg.VTXChannel {
		e.cfg.VTXChannel = uint8(e.vtxChannel)
		e.vtx.SetChannel(e.vtxChannel.Frequency())
		hal.Logf(e.log, "osd: vtx set to %d MHz", e.vtxChannel.Frequency())
	}
	if e.store == nil {
		hal.Logf(e.log, "osd: menu closed, no store to save to")
		return
	}
	if err := e.store.Commit(); err != nil {
		hal.Logf(e.log, "osd: save failed: %v", err)
		return
	}
	hal.Logf(e.log, "osd: config saved")
}

// flightSeconds is the armed time shown on the overlay.
func (e *Engine) flightSeconds(now uint32) uint32 {
	if e.armed {
		return e.armedSeconds + (now-e.armedAt)/1000000
	}
	return e.armedSeconds
}

// InMenu reports whether the menu is open.
func (e *Engine) InMenu() bool { return e.menu.active }

// PageIndex returns the index of the current page.
func (e *Engine) PageIndex() int { return e.menu.page }

// Cursor returns the menu cursor.
func (e *Engine) Cursor() Cursor { return e.menu.cursor }

// Pages returns the page catalog.
func (e *Engine) Pages() []Page { return e.menu.pages }

// ArmedSeconds returns the accumulated armed time of completed flights.
func (e *Engine) ArmedSeconds() uint32 { return e.armedSeconds }

// Armed reports the last sampled arm state.
func (e *Engine) Armed() bool { return e.armed }

// Sticks returns the last sampled normalized sticks.
func (e *Engine) Sticks() Sticks { return e.sticks }

// PendingVTXChannel returns the channel being edited on the VTX page.
func (e *Engine) PendingVTXChannel() vtx.Channel { return e.vtxChannel }
