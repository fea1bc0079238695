package osd

import (
	"errors"

	"flightosd/config"
)

type fakeClock struct{ now uint32 }

func (c *fakeClock) Micros() uint32 { return c.now }

type cellWrite struct {
	s   string
	pos uint16
}

// fakeDisplay keeps the writes of the pass in progress and moves them to
// frame on every flush.
type fakeDisplay struct {
	pending []cellWrite
	frame   []cellWrite
	flushes int
}

func (d *fakeDisplay) WriteString(s string, pos uint16) {
	d.pending = append(d.pending, cellWrite{s: s, pos: pos})
}

func (d *fakeDisplay) DrawScreenNonBlocking() {
	d.frame = d.pending
	d.pending = nil
	d.flushes++
}

func (d *fakeDisplay) at(pos uint16) (string, bool) {
	for i := len(d.frame) - 1; i >= 0; i-- {
		if d.frame[i].pos == pos {
			return d.frame[i].s, true
		}
	}
	return "", false
}

func (d *fakeDisplay) contains(s string) bool {
	for _, w := range d.frame {
		if w.s == s {
			return true
		}
	}
	return false
}

type fakeSensors struct{ tel Telemetry }

func (s *fakeSensors) Sample() Telemetry { return s.tel }

func (s *fakeSensors) hold(g Gesture) {
	st := SticksFor(g)
	for i, v := range st {
		s.tel.Channels[i] = config.PWMRangeMin + uint16(v)*10
	}
}

type fakeStore struct {
	commits int
	err     error
}

func (s *fakeStore) Commit() error {
	s.commits++
	return s.err
}

type fakeVTX struct {
	inits int
	freqs []uint16
}

func (v *fakeVTX) Init()                   { v.inits++ }
func (v *fakeVTX) SetChannel(freq uint16) { v.freqs = append(v.freqs, freq) }

type lineLog struct{ lines []string }

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

var errFlashGone = errors.New("flash gone")

type harness struct {
	cfg     *config.Config
	clock   *fakeClock
	display *fakeDisplay
	sensors *fakeSensors
	store   *fakeStore
	vtx     *fakeVTX
	log     *lineLog
	e       *Engine
}

type harnessOpt func(*Options, *harness)

func withVTX() harnessOpt {
	return func(o *Options, h *harness) {
		h.vtx = &fakeVTX{}
		o.VTX = h.vtx
	}
}

func withRCTuning() harnessOpt {
	return func(o *Options, _ *harness) { o.RCTuning = true }
}

func withClock(start uint32) harnessOpt {
	return func(_ *Options, h *harness) { h.clock.now = start }
}

func newHarness(opts ...harnessOpt) *harness {
	cfg := config.Default()
	h := &harness{
		cfg:     &cfg,
		clock:   &fakeClock{now: 1000},
		display: &fakeDisplay{},
		sensors: &fakeSensors{},
		store:   &fakeStore{},
		log:     &lineLog{},
	}
	h.sensors.hold(0)
	h.sensors.tel.VBat = 126
	o := Options{
		Config:  h.cfg,
		Display: h.display,
		Sensors: h.sensors,
		Clock:   h.clock,
		Store:   h.store,
		Logger:  h.log,
	}
	for _, fn := range opts {
		fn(&o, h)
	}
	h.e = New(o)
	return h
}

// tick calls Update at the current time and then moves the clock one period on.
func (h *harness) tick() {
	h.e.Update()
	h.clock.now += UpdatePeriodMicros
}

// content runs one content pass and the flush pass after it, so the content
// writes end up in display.frame.
func (h *harness) content() {
	h.tick()
	h.tick()
}

func (h *harness) gesture(g Gesture) {
	h.sensors.hold(g)
	h.content()
}

func (h *harness) openMenu() {
	h.gesture(GestureEnterMenu)
	h.sensors.hold(0)
}

func (h *harness) pageIndex(title string) int {
	for i, p := range h.e.Pages() {
		if p.Title == title {
			return i
		}
	}
	return -1
}
