// Package tui shows the OSD grid in a terminal with Bubble Tea.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flightosd/app"
	"flightosd/osd"
	"flightosd/screen"
)

// Options configures the terminal front-end.
type Options struct {
	System *app.System
	// Tick is how often the engine runs; it self-throttles below that.
	Tick time.Duration
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the Bubble Tea model driving one simulator System.
type Model struct {
	sys  *app.System
	tick time.Duration
	keys keyMap

	showHelp bool
	frame    string
}

var (
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f87af")).
			Foreground(lipgloss.Color("#f0f0f0")).
			Background(lipgloss.Color("#1c2630"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a"))
	armedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	helpKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f"))
)

// New builds the model.
func New(opts Options) Model {
	tick := opts.Tick
	if tick <= 0 {
		tick = 20 * time.Millisecond
	}
	return Model{sys: opts.System, tick: tick, keys: defaultKeyMap()}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}
		if ev, ok := keyEvent(msg); ok {
			m.sys.HandleKey(ev)
		}
		return m, nil

	case tickMsg:
		m.sys.Tick()
		m.frame = m.sys.Text(screen.UnicodeGlyphs)
		return m, tickCmd(m.tick)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(screenStyle.Render(padFrame(m.frame)))
	b.WriteByte('\n')
	b.WriteString(m.status())
	b.WriteByte('\n')
	if m.showHelp {
		for _, k := range m.keys.help() {
			h := k.Help()
			fmt.Fprintf(&b, "  %s %s\n", helpKey.Render(fmt.Sprintf("%-12s", h.Key)), h.Desc)
		}
	} else {
		b.WriteString(statusStyle.Render("? for keys, q to quit"))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) status() string {
	e := m.sys.Engine
	arm := statusStyle.Render("disarmed")
	if e.Armed() {
		arm = armedStyle.Render("ARMED")
	}
	where := "overlay"
	if e.InMenu() {
		where = fmt.Sprintf("menu %s, cursor %s", e.Pages()[e.PageIndex()].Title, cursorText(e.Cursor()))
	}
	st := e.Sticks()
	return fmt.Sprintf("%s  %s  %s",
		arm,
		statusStyle.Render(where),
		statusStyle.Render(fmt.Sprintf("R%3d P%3d Y%3d T%3d", st[osd.StickRoll], st[osd.StickPitch], st[osd.StickYaw], st[osd.StickThrottle])),
	)
}

func cursorText(c osd.Cursor) string {
	switch c := c.(type) {
	case osd.ToolbarCursor:
		return [...]string{"EXIT", "SAVE", "PAGE"}[c.Slot]
	case osd.RowCursor:
		return fmt.Sprintf("row %d col %d", c.Row, c.Col)
	}
	return "?"
}

// padFrame makes every line full width so the border stays square.
func padFrame(frame string) string {
	lines := strings.Split(frame, "\n")
	for len(lines) < screen.Rows {
		lines = append(lines, "")
	}
	for i, l := range lines {
		if n := screen.Columns - lipgloss.Width(l); n > 0 {
			lines[i] = l + strings.Repeat(" ", n)
		}
	}
	return strings.Join(lines, "\n")
}

// Run starts the terminal front-end and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
