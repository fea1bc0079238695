package osd

import "fmt"

const (
	// MaxMenuRows bounds the data rows of one page.
	MaxMenuRows = 8
	// MaxColumns bounds the value columns of one page.
	MaxColumns = 3
)

// Column is one value column of a page. Column 0 holds P, 1 holds I and 2
// holds D on gain rows; single-value rows only use column 0.
type Column struct {
	Title string
	X     uint16
}

// RowKind tags what a row edits.
type RowKind uint8

const (
	KindReadOnly RowKind = iota
	KindPIDGain
	KindRate
	KindSetting
	KindVTX
)

func (k RowKind) String() string {
	switch k {
	case KindReadOnly:
		return "read-only"
	case KindPIDGain:
		return "pid-gain"
	case KindRate:
		return "rate"
	case KindSetting:
		return "setting"
	case KindVTX:
		return "vtx"
	default:
		return "?"
	}
}

// Field formats the value a row shows in a column. ok is false when the row
// has nothing in that column.
type Field interface {
	Text(col int) (s string, ok bool)
}

// Adjuster is a Field that can be stepped up or down. Implementations
// saturate at their range limits.
type Adjuster interface {
	Field
	Adjust(increase bool, col int)
}

// Row is one line of a page.
type Row struct {
	Title string
	Y     uint8
	Kind  RowKind
	field Field
}

// NewRow binds a field to a row. Fields that implement Adjuster are editable.
func NewRow(title string, kind RowKind, f Field) Row {
	return Row{Title: title, Kind: kind, field: f}
}

// Editable reports whether Update changes anything.
func (r Row) Editable() bool {
	_, ok := r.field.(Adjuster)
	return ok
}

// Text returns the value shown in col.
func (r Row) Text(col int) (string, bool) {
	if r.field == nil {
		return "", false
	}
	return r.field.Text(col)
}

// Print writes the value for col at pos.
func (r Row) Print(d Display, pos uint16, col int) {
	if s, ok := r.Text(col); ok {
		d.WriteString(s, pos)
	}
}

// Update steps the value in col. Read-only rows ignore it.
func (r Row) Update(increase bool, col int) {
	if a, ok := r.field.(Adjuster); ok {
		a.Adjust(increase, col)
	}
}

// Page is an immutable menu page: a title, up to MaxColumns columns and up to
// MaxMenuRows rows.
type Page struct {
	Title string

	cols  [MaxColumns]Column
	ncols uint8
	rows  [MaxMenuRows]Row
	nrows uint8
}

// NewPage lays rows out top to bottom. Exceeding the column or row bound is
// a programming error and panics.
func NewPage(title string, cols []Column, rows ...Row) Page {
	if len(cols) == 0 || len(cols) > MaxColumns {
		panic(fmt.Sprintf("osd: page %q has %d columns", title, len(cols)))
	}
	if len(rows) == 0 || len(rows) > MaxMenuRows {
		panic(fmt.Sprintf("osd: page %q has %d rows", title, len(rows)))
	}
	p := Page{Title: title, ncols: uint8(len(cols)), nrows: uint8(len(rows))}
	copy(p.cols[:], cols)
	for i, r := range rows {
		r.Y = uint8(i)
		p.rows[i] = r
	}
	return p
}

// Columns returns the page's columns.
func (p *Page) Columns() []Column { return p.cols[:p.ncols] }

// Rows returns the page's rows.
func (p *Page) Rows() []Row { return p.rows[:p.nrows] }

// ColumnCount returns the number of columns.
func (p *Page) ColumnCount() int { return int(p.ncols) }

// RowCount returns the number of rows.
func (p *Page) RowCount() int { return int(p.nrows) }
