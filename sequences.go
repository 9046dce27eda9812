package phantom

import "fmt"

// These have no terminfo entry or work everywhere, so we hardcode them
const (
	// cup is absolute cursor positioning, 1-based row;col
	cup = "\x1b[%d;%dH"
	// sgrReset resets fg, bg, and attributes
	sgrReset = "\x1b[m"
	// clear erases the full screen
	clear = "\x1b[2J"
	// home moves the cursor to the top left
	home = "\x1b[H"
	// setTitle sets the terminal title via OSC 2
	setTitle = "\x1b]2;%s\x1b\\"
)

// DEC private modes
const (
	cursorVisibility = 25
	alternateScreen  = 1049
	mouseAllEvents   = 1003
	mouseFocusEvents = 1004
	mouseSGR         = 1006
	bracketedPaste   = 2004
)

// decset sets a DEC private mode
func decset(mode int) string {
	return fmt.Sprintf("\x1b[?%dh", mode)
}

// decrst resets a DEC private mode
func decrst(mode int) string {
	return fmt.Sprintf("\x1b[?%dl", mode)
}

// tparm fills in the parameters of a sequence template
func tparm(s string, args ...any) string {
	return fmt.Sprintf(s, args...)
}
