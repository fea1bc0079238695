package osd

import "fmt"

// LineLength is the width of the character grid in cells.
const LineLength = 30

// Glyphs of the OSD character ROM.
const (
	SymBattery  = "\x97"
	SymRSSI     = "\xba"
	SymThrottle = "\x7e"
	SymClock    = "\x9c"
	SymCursor   = ">"
)

const toolbarText = "EXIT     SAVE+EXIT     PAGE"

// Overlay cell positions.
const (
	posLowVoltage = 310
	posArmed      = 283
	posDisarmed   = 281
	posRSSI       = 331
	posClock      = 351
	posBattery    = 361
	posThrottle   = 381
	posLoad       = 26
)

// Display is the character display the engine draws into. Positions are
// linear cell indexes, row*LineLength + column.
type Display interface {
	WriteString(s string, pos uint16)
	DrawScreenNonBlocking()
}

func (m *menu) draw(d Display) {
	p := m.current()

	d.WriteString(toolbarText, toolbarLine*LineLength+1)

	title := p.Title
	if len(title) > LineLength {
		title = title[:LineLength]
	}
	d.WriteString(title, uint16(titleLine*LineLength+(LineLength-len(title))/2))

	for _, c := range p.Columns() {
		if c.Title != "" {
			d.WriteString(c.Title, headerLine*LineLength+c.X)
		}
	}

	for _, r := range p.Rows() {
		line := uint16(firstDataLine) + uint16(r.Y)
		d.WriteString(r.Title, line*LineLength+1)
		for col, c := range p.Columns() {
			r.Print(d, line*LineLength+c.X, col)
		}
	}

	d.WriteString(SymCursor, m.cursorCell())
}

// drawOverlay writes the flight overlay. It consumes one step of the arming
// flash countdown when the flash is shown.
func (e *Engine) drawOverlay(now uint32) {
	d := e.display
	if e.blink && e.tel.VBat < e.cfg.BatteryWarning {
		d.WriteString("LOW VOLTAGE", posLowVoltage)
	}
	if e.armingFlash > 0 && e.blink {
		d.WriteString("ARMED", posArmed)
		e.armingFlash--
	}
	if !e.armed {
		d.WriteString("DISARMED", posDisarmed)
	}

	d.WriteString(fmt.Sprintf(SymBattery+"%s", formatVoltage(e.tel.VBat)), posBattery)
	d.WriteString(fmt.Sprintf(SymRSSI+"%d", e.tel.RSSI/10), posRSSI)
	d.WriteString(fmt.Sprintf(SymThrottle+"%3d", NormalizeChannel(e.tel.Channels[StickThrottle])), posThrottle)

	secs := e.flightSeconds(now)
	d.WriteString(fmt.Sprintf(SymClock+" %02d:%02d", secs/60, secs%60), posClock)
	d.WriteString(fmt.Sprintf("%d", e.tel.SystemLoad), posLoad)
}
