package tui

import "fmt"

// KeyMap defines the keyboard shortcuts displayed in the footer.
type KeyMap struct {
	Interrupt string
	ToggleLog string
	Quit      string
}

// DefaultKeyMap returns the default shortcut mapping.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Interrupt: "esc",
		ToggleLog: "l",
		Quit:      "q",
	}
}

// HelpLine renders the footer help text. The interrupt hint is only offered
// while something is running.
func (k KeyMap) HelpLine(running bool) string {
	if running {
		return fmt.Sprintf("[%s] interrupt  [%s] log  [%s] quit", k.Interrupt, k.ToggleLog, k.Quit)
	}
	return fmt.Sprintf("[%s] log  [%s] quit", k.ToggleLog, k.Quit)
}
