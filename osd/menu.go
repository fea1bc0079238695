package osd

// ToolbarSlot is a position on the page toolbar.
type ToolbarSlot uint8

const (
	SlotExit ToolbarSlot = iota
	SlotSave
	SlotPage
	toolbarSlots
)

// Cursor is either a ToolbarCursor or a RowCursor.
type Cursor interface {
	isCursor()
}

// ToolbarCursor rests on one of the three toolbar slots.
type ToolbarCursor struct {
	Slot ToolbarSlot
}

// RowCursor rests on a data row and column of the current page.
type RowCursor struct {
	Row int
	Col int
}

func (ToolbarCursor) isCursor() {}
func (RowCursor) isCursor()     {}

type menuAction uint8

const (
	actionNone menuAction = iota
	actionExit
	actionSave
)

// menu is the cursor state machine over a fixed page catalog.
type menu struct {
	pages  []Page
	active bool
	page   int
	cursor Cursor
}

func (m *menu) enter() {
	m.active = true
	m.cursor = ToolbarCursor{Slot: SlotPage}
}

func (m *menu) current() *Page { return &m.pages[m.page] }

// apply runs one pass of gesture handling. Checks run in a fixed order and a
// later check sees the cursor left by an earlier one.
func (m *menu) apply(g Gesture) menuAction {
	act := actionNone
	p := m.current()

	if g.Has(GestureSelect) {
		switch c := m.cursor.(type) {
		case ToolbarCursor:
			switch c.Slot {
			case SlotExit:
				act = actionExit
			case SlotSave:
				act = actionSave
			case SlotPage:
				m.page = (m.page + 1) % len(m.pages)
				p = m.current()
			}
		case RowCursor:
			p.rows[c.Row].Update(true, c.Col)
		}
	}

	if g.Has(GestureBack) {
		switch c := m.cursor.(type) {
		case ToolbarCursor:
			if c.Slot == SlotPage && m.page > 0 {
				m.page--
				p = m.current()
			}
		case RowCursor:
			p.rows[c.Row].Update(false, c.Col)
		}
	}

	if g.Has(GestureUp) {
		switch c := m.cursor.(type) {
		case ToolbarCursor:
			m.cursor = RowCursor{Row: p.RowCount() - 1}
		case RowCursor:
			if c.Row > 0 {
				c.Row--
			}
			m.cursor = c
		}
	}

	if g.Has(GestureDown) {
		switch c := m.cursor.(type) {
		case RowCursor:
			if c.Row < p.RowCount()-1 {
				c.Row++
				m.cursor = c
			} else {
				m.cursor = ToolbarCursor{Slot: ToolbarSlot(c.Col)}
			}
		}
	}

	if g.Has(GestureRight) {
		switch c := m.cursor.(type) {
		case ToolbarCursor:
			if c.Slot < toolbarSlots-1 {
				c.Slot++
			}
			m.cursor = c
		case RowCursor:
			if c.Col < p.ColumnCount()-1 {
				c.Col++
			}
			m.cursor = c
		}
	}

	if g.Has(GestureLeft) {
		switch c := m.cursor.(type) {
		case ToolbarCursor:
			if c.Slot > 0 {
				c.Slot--
			}
			m.cursor = c
		case RowCursor:
			if c.Col > 0 {
				c.Col--
			}
			m.cursor = c
		}
	}

	return act
}

// Screen layout of the menu, in grid lines and cells.
const (
	titleLine     = 1
	headerLine    = 3
	firstDataLine = 4
	toolbarLine   = 12
)

var toolbarCursorX = [toolbarSlots]uint16{0, 9, 23}

// cursorCell returns the linear cell of the cursor glyph.
func (m *menu) cursorCell() uint16 {
	switch c := m.cursor.(type) {
	case RowCursor:
		p := m.current()
		x := p.cols[c.Col].X - 1
		y := uint16(firstDataLine) + uint16(p.rows[c.Row].Y)
		return y*LineLength + x
	case ToolbarCursor:
		return toolbarLine*LineLength + toolbarCursorX[c.Slot]
	default:
		return toolbarLine * LineLength
	}
}
