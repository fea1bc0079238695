package osd

import (
	"fmt"
	"testing"

	"flightosd/vtx"
)

func TestEnterMenuGesture(t *testing.T) {
	h := newHarness()

	h.sensors.hold(GestureEnterMenu)
	h.tick()

	if !h.e.InMenu() {
		t.Fatalf("InMenu() = false after enter gesture, want true")
	}
	if got := h.e.Cursor(); got != (ToolbarCursor{Slot: SlotPage}) {
		t.Fatalf("Cursor() = %#v, want toolbar slot 2", got)
	}
	if h.e.PageIndex() != 0 {
		t.Fatalf("PageIndex() = %d, want 0", h.e.PageIndex())
	}
}

func TestEnterMenuIgnoredWhileArmed(t *testing.T) {
	h := newHarness()
	h.sensors.tel.Armed = true
	h.sensors.hold(GestureEnterMenu)

	for i := 0; i < 4; i++ {
		h.content()
	}
	if h.e.InMenu() {
		t.Fatalf("InMenu() = true while armed, want false")
	}
}

func TestPageNavigation(t *testing.T) {
	h := newHarness()
	h.openMenu()

	h.gesture(GestureSelect)
	if h.e.PageIndex() != 1 {
		t.Fatalf("PageIndex() after select = %d, want 1", h.e.PageIndex())
	}

	h.gesture(GestureBack)
	if h.e.PageIndex() != 0 {
		t.Fatalf("PageIndex() after back = %d, want 0", h.e.PageIndex())
	}

	h.gesture(GestureBack)
	if h.e.PageIndex() != 0 {
		t.Fatalf("PageIndex() after back on first page = %d, want 0", h.e.PageIndex())
	}

	n := len(h.e.Pages())
	for i := 0; i < n; i++ {
		h.gesture(GestureSelect)
	}
	if h.e.PageIndex() != 0 {
		t.Fatalf("PageIndex() after %d selects = %d, want wrap to 0", n, h.e.PageIndex())
	}
}

func TestIntegerGainEditing(t *testing.T) {
	h := newHarness()
	h.openMenu()
	h.gesture(GestureSelect) // PID SETTINGS
	if got := h.e.menu.current().Title; got != pagePID {
		t.Fatalf("page = %q, want %q", got, pagePID)
	}

	h.gesture(GestureUp) // toolbar to last row
	for i := 0; i < 5; i++ {
		h.gesture(GestureUp)
	}
	if got := h.e.Cursor(); got != (RowCursor{Row: 0, Col: 0}) {
		t.Fatalf("Cursor() = %#v, want row 0 col 0", got)
	}
	if h.cfg.PID.P8[0] != 40 {
		t.Fatalf("roll P = %d, want 40", h.cfg.PID.P8[0])
	}

	for i := 0; i < 5; i++ {
		h.gesture(GestureSelect)
	}
	if h.cfg.PID.P8[0] != 45 {
		t.Fatalf("roll P after 5 selects = %d, want 45", h.cfg.PID.P8[0])
	}
	if s, ok := h.display.at(4*LineLength + 13); !ok || s != "45" {
		t.Fatalf("roll P cell = %q, want %q", s, "45")
	}

	h.cfg.PID.P8[0] = 199
	h.gesture(GestureSelect)
	h.gesture(GestureSelect)
	if h.cfg.PID.P8[0] != 200 {
		t.Fatalf("roll P = %d, want saturation at 200", h.cfg.PID.P8[0])
	}
}

func TestHeldGestureRepeats(t *testing.T) {
	h := newHarness()
	h.openMenu()
	h.gesture(GestureSelect)
	h.gesture(GestureUp)
	if got := h.e.Cursor(); got != (RowCursor{Row: 5, Col: 0}) {
		t.Fatalf("Cursor() = %#v, want row 5", got)
	}

	h.sensors.hold(GestureUp)
	for i := 0; i < 3; i++ {
		h.content()
	}
	if got := h.e.Cursor(); got != (RowCursor{Row: 2, Col: 0}) {
		t.Fatalf("Cursor() = %#v after three held passes, want row 2", got)
	}
}

func TestToolbarExitDoesNotCommit(t *testing.T) {
	h := newHarness()
	h.openMenu()
	h.gesture(GestureLeft)
	h.gesture(GestureLeft)
	if got := h.e.Cursor(); got != (ToolbarCursor{Slot: SlotExit}) {
		t.Fatalf("Cursor() = %#v, want exit slot", got)
	}

	h.gesture(GestureSelect)
	if h.e.InMenu() {
		t.Fatalf("InMenu() = true after exit, want false")
	}
	if h.store.commits != 0 {
		t.Fatalf("commits = %d, want 0", h.store.commits)
	}
	if !h.display.contains("DISARMED") {
		t.Fatalf("overlay not drawn on the pass that closed the menu")
	}
}

func TestSaveCommitsVTXChannel(t *testing.T) {
	h := newHarness(withVTX())
	h.e.Init()
	if h.vtx.inits != 1 || len(h.vtx.freqs) != 1 || h.vtx.freqs[0] != 5865 {
		t.Fatalf("Init: inits=%d freqs=%v, want one init tuned to 5865", h.vtx.inits, h.vtx.freqs)
	}

	h.openMenu()
	h.gesture(GestureSelect) // VTX SETTINGS
	if got := h.e.menu.current().Title; got != pageVTX {
		t.Fatalf("page = %q, want %q", got, pageVTX)
	}
	h.gesture(GestureUp) // FREQUENCY
	h.gesture(GestureUp) // CHANNEL
	h.gesture(GestureSelect)
	h.gesture(GestureSelect)
	if h.e.PendingVTXChannel() != 2 {
		t.Fatalf("pending channel = %d, want 2", h.e.PendingVTXChannel())
	}
	if h.cfg.VTXChannel != 0 {
		t.Fatalf("config channel changed before save: %d", h.cfg.VTXChannel)
	}

	h.gesture(GestureDown) // FREQUENCY
	h.gesture(GestureDown) // toolbar slot 0
	h.gesture(GestureRight)
	if got := h.e.Cursor(); got != (ToolbarCursor{Slot: SlotSave}) {
		t.Fatalf("Cursor() = %#v, want save slot", got)
	}
	h.gesture(GestureSelect)

	if h.e.InMenu() {
		t.Fatalf("InMenu() = true after save, want false")
	}
	if h.cfg.VTXChannel != 2 {
		t.Fatalf("config channel = %d, want 2", h.cfg.VTXChannel)
	}
	want := vtx.Channel(2).Frequency()
	if got := h.vtx.freqs[len(h.vtx.freqs)-1]; got != want {
		t.Fatalf("SetChannel(%d), want %d", got, want)
	}
	if h.store.commits != 1 {
		t.Fatalf("commits = %d, want 1", h.store.commits)
	}
}

func TestSaveWithoutVTXChangeSkipsDriver(t *testing.T) {
	h := newHarness(withVTX())
	h.e.Init()
	h.openMenu()
	h.gesture(GestureLeft)

	h.gesture(GestureSelect)
	if len(h.vtx.freqs) != 1 {
		t.Fatalf("SetChannel called %d times, want only the Init call", len(h.vtx.freqs))
	}
	if h.store.commits != 1 {
		t.Fatalf("commits = %d, want 1", h.store.commits)
	}
}

func TestCommitFailureStillExits(t *testing.T) {
	h := newHarness()
	h.store.err = errFlashGone
	h.openMenu()
	h.gesture(GestureLeft)
	h.gesture(GestureSelect)

	if h.e.InMenu() {
		t.Fatalf("InMenu() = true after failed save, want false")
	}
	found := false
	for _, l := range h.log.lines {
		if l == "osd: save failed: flash gone" {
			found = true
		}
	}
	if !found {
		t.Fatalf("log lines = %q, want the save failure", h.log.lines)
	}
}

func TestArmingClosesMenu(t *testing.T) {
	h := newHarness()
	h.openMenu()

	h.sensors.tel.Armed = true
	h.content()
	if h.e.InMenu() {
		t.Fatalf("InMenu() = true after arming, want false")
	}
	if !h.e.Armed() {
		t.Fatalf("Armed() = false, want true")
	}
}

func TestArmedTimeAccumulates(t *testing.T) {
	h := newHarness()

	h.sensors.tel.Armed = true
	h.tick()
	start := h.clock.now - UpdatePeriodMicros
	h.tick()

	h.clock.now = start + 125*1000000
	h.sensors.tel.Armed = false
	h.tick()
	h.tick()

	if h.e.ArmedSeconds() != 125 {
		t.Fatalf("ArmedSeconds() = %d, want 125", h.e.ArmedSeconds())
	}
	if s, _ := h.display.at(posClock); s != SymClock+" 02:05" {
		t.Fatalf("clock = %q, want %q", s, SymClock+" 02:05")
	}

	h.sensors.tel.Armed = true
	h.tick()
	start = h.clock.now - UpdatePeriodMicros
	h.tick()
	h.clock.now = start + 10*1000000
	h.sensors.tel.Armed = false
	h.tick()
	h.tick()

	if s, _ := h.display.at(posClock); s != SymClock+" 02:15" {
		t.Fatalf("clock = %q, want %q", s, SymClock+" 02:15")
	}
}

func TestClockRunsWhileArmed(t *testing.T) {
	h := newHarness()
	h.sensors.tel.Armed = true
	h.tick()
	start := h.clock.now - UpdatePeriodMicros
	h.tick()

	h.clock.now = start + 61*1000000
	h.content()
	if s, _ := h.display.at(posClock); s != SymClock+" 01:01" {
		t.Fatalf("clock = %q, want %q", s, SymClock+" 01:01")
	}
	if h.display.contains("DISARMED") {
		t.Fatalf("DISARMED shown while armed")
	}
}

func TestArmedFlashCountdown(t *testing.T) {
	h := newHarness()
	h.sensors.tel.Armed = true

	shown := 0
	for i := 0; i < 20; i++ {
		h.content()
		if s, ok := h.display.at(posArmed); ok && s == "ARMED" {
			shown++
		}
	}
	if shown != ArmedFlashTicks {
		t.Fatalf("ARMED shown %d times, want %d", shown, ArmedFlashTicks)
	}
}

func TestLowVoltageBlinks(t *testing.T) {
	h := newHarness()
	h.sensors.tel.VBat = h.cfg.BatteryWarning - 1

	var seen []bool
	for i := 0; i < 4; i++ {
		h.content()
		s, ok := h.display.at(posLowVoltage)
		seen = append(seen, ok && s == "LOW VOLTAGE")
	}
	want := []bool{true, false, true, false}
	if fmt.Sprint(seen) != fmt.Sprint(want) {
		t.Fatalf("LOW VOLTAGE pattern = %v, want %v", seen, want)
	}
}

func TestOverlayFields(t *testing.T) {
	h := newHarness()
	h.sensors.tel.VBat = 118
	h.sensors.tel.RSSI = 873
	h.sensors.tel.SystemLoad = 37
	h.sensors.tel.Channels[StickThrottle] = 1420
	h.content()

	cases := []struct {
		pos  uint16
		want string
	}{
		{posBattery, SymBattery + "11.8"},
		{posRSSI, SymRSSI + "87"},
		{posThrottle, SymThrottle + " 42"},
		{posClock, SymClock + " 00:00"},
		{posLoad, "37"},
		{posDisarmed, "DISARMED"},
	}
	for _, tc := range cases {
		if s, _ := h.display.at(tc.pos); s != tc.want {
			t.Fatalf("cell %d = %q, want %q", tc.pos, s, tc.want)
		}
	}
}

func TestUpdateGate(t *testing.T) {
	h := newHarness()
	h.e.Update()
	if len(h.display.pending) == 0 {
		t.Fatalf("first Update drew nothing")
	}

	h.clock.now += UpdatePeriodMicros - 1
	h.e.Update()
	if h.display.flushes != 0 {
		t.Fatalf("flushes = %d before the deadline, want 0", h.display.flushes)
	}

	// Late call: the next deadline counts from now, not from the missed one.
	h.clock.now += 50001
	h.e.Update()
	if h.display.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", h.display.flushes)
	}
	if h.e.nextUpdateAt != h.clock.now+UpdatePeriodMicros {
		t.Fatalf("nextUpdateAt = %d, want %d", h.e.nextUpdateAt, h.clock.now+UpdatePeriodMicros)
	}
}

func TestUpdateGateAcrossWrap(t *testing.T) {
	h := newHarness(withClock(0xFFFFFFFF - 100000))
	h.e.Update()

	h.clock.now += UpdatePeriodMicros - 10
	h.e.Update()
	if h.display.flushes != 0 {
		t.Fatalf("fired early across wrap")
	}
	h.clock.now += 10
	h.e.Update()
	if h.display.flushes != 1 {
		t.Fatalf("flushes = %d after wrap, want 1", h.display.flushes)
	}
}

func TestMenuLayout(t *testing.T) {
	h := newHarness()
	h.openMenu()
	h.gesture(GestureSelect) // PID SETTINGS
	h.gesture(GestureUp)

	cases := []struct {
		pos  uint16
		want string
	}{
		{12*LineLength + 1, toolbarText},
		{uint16(1*LineLength + (LineLength-len(pagePID))/2), pagePID},
		{3*LineLength + 13, "P"},
		{3*LineLength + 19, "I"},
		{3*LineLength + 25, "D"},
		{4*LineLength + 1, "ROLL"},
		{9*LineLength + 1, "YAW_RATE"},
		{4*LineLength + 19, "30"},
		{6*LineLength + 13, "85"},
		{9*LineLength + 12, SymCursor},
	}
	for _, tc := range cases {
		if s, _ := h.display.at(tc.pos); s != tc.want {
			t.Fatalf("cell %d = %q, want %q", tc.pos, s, tc.want)
		}
	}
	if _, ok := h.display.at(7*LineLength + 19); ok {
		t.Fatalf("rate row printed a value in column 1")
	}
}

func TestToolbarCursorCells(t *testing.T) {
	h := newHarness()
	h.openMenu()

	want := map[ToolbarSlot]uint16{SlotPage: 12*30 + 23, SlotSave: 12*30 + 9, SlotExit: 12 * 30}
	for _, slot := range []ToolbarSlot{SlotPage, SlotSave, SlotExit} {
		if slot != SlotPage {
			h.gesture(GestureLeft)
		} else {
			h.content()
		}
		if s, _ := h.display.at(want[slot]); s != SymCursor {
			t.Fatalf("slot %d: cell %d = %q, want cursor", slot, want[slot], s)
		}
	}
}

func TestCatalogFeatures(t *testing.T) {
	cases := []struct {
		name string
		opts []harnessOpt
		want []string
	}{
		{"base", nil, []string{pageStatus, pagePID}},
		{"vtx", []harnessOpt{withVTX()}, []string{pageStatus, pageVTX, pagePID}},
		{"all", []harnessOpt{withVTX(), withRCTuning()}, []string{pageStatus, pageVTX, pagePID, pageRCTuning}},
	}
	for _, tc := range cases {
		h := newHarness(tc.opts...)
		var got []string
		for _, p := range h.e.Pages() {
			got = append(got, p.Title)
		}
		if fmt.Sprint(got) != fmt.Sprint(tc.want) {
			t.Fatalf("%s: pages = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStatusPageShowsTelemetry(t *testing.T) {
	h := newHarness()
	h.sensors.tel.SystemLoad = 12
	h.sensors.tel.VBat = 121
	h.openMenu()
	h.content()

	if s, _ := h.display.at(4*LineLength + 15); s != "12" {
		t.Fatalf("AVG LOAD = %q, want %q", s, "12")
	}
	if s, _ := h.display.at(5*LineLength + 15); s != "12.1" {
		t.Fatalf("BATT = %q, want %q", s, "12.1")
	}
}
