package input

import "github.com/gdamore/tcell/v2"

// TcellKey maps a tcell key event to a key.
func TcellKey(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyUp:
		return KeyThrust, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyQuit, true
	case tcell.KeyRune:
		return RuneKey(ev.Rune())
	}
	return 0, false
}
