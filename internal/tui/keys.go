package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"flightosd/hal"
)

// keyMap defines the simulator's keyboard bindings. Stick keys are
// translated into hal key events; the rest act on the front-end itself.
type keyMap struct {
	Quit key.Binding
	Help key.Binding

	Menu     key.Binding
	Arm      key.Binding
	Sticks   key.Binding
	Select   key.Binding
	Back     key.Binding
	Throttle key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "enter menu (disarmed)"),
		),
		Arm: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle arm switch"),
		),
		Sticks: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "k", "j", "h", "l"),
			key.WithHelp("arrows/hjkl", "pitch and roll"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " ", "+"),
			key.WithHelp("enter/+", "yaw right: select, increase"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "esc", "-"),
			key.WithHelp("bksp/-", "yaw left: back, decrease"),
		),
		Throttle: key.NewBinding(
			key.WithKeys("w", "s"),
			key.WithHelp("w/s", "throttle up/down"),
		),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Menu, k.Sticks, k.Select, k.Back, k.Arm, k.Throttle, k.Help, k.Quit}
}

// keyEvent translates a terminal key into a press event.
func keyEvent(msg tea.KeyMsg) (hal.KeyEvent, bool) {
	ev := hal.KeyEvent{Press: true}
	switch msg.Type {
	case tea.KeyUp:
		ev.Code = hal.KeyUp
	case tea.KeyDown:
		ev.Code = hal.KeyDown
	case tea.KeyLeft:
		ev.Code = hal.KeyLeft
	case tea.KeyRight:
		ev.Code = hal.KeyRight
	case tea.KeyEnter:
		ev.Code = hal.KeyEnter
	case tea.KeySpace:
		ev.Code = hal.KeySpace
	case tea.KeyBackspace:
		ev.Code = hal.KeyBackspace
	case tea.KeyEsc:
		ev.Code = hal.KeyEscape
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return hal.KeyEvent{}, false
		}
		ev.Rune = msg.Runes[0]
	default:
		return hal.KeyEvent{}, false
	}
	return ev, true
}
