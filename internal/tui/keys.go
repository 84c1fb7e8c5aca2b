package tui

// Key names as reported by tea.KeyMsg.String().
const (
	keyQuit   = "q"
	keyCtrlC  = "ctrl+c"
	keyEnter  = "enter"
	keyEsc    = "esc"
	keySlash  = "/"
	keyUp     = "up"
	keyDown   = "down"
	keyK      = "k"
	keyJ      = "j"
	keyLeft   = "left"
	keyRight  = "right"
	keyH      = "h"
	keyL      = "l"
	keyFirst  = "g"
	keyLast   = "G"
	keyDelete = "d"
	keyReload = "r"
	keyYes    = "y"
	keyNo     = "n"
)

// helpText is the key help shown under the list.
const helpText = "/ search • 1-9 sort • ←/→ page • g/G first/last • j/k move • d delete • r refresh • q quit"
