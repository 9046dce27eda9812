package phantom

// Mouse is a mouse event
type Mouse struct {
	Button    MouseButton
	Row       int
	Col       int
	EventType EventType
	Modifiers ModifierMask
}

// MouseButton represents a mouse button
type MouseButton int

const (
	MouseLeftButton MouseButton = iota
	MouseMiddleButton
	MouseRightButton
	MouseNoButton

	MouseWheelUp   MouseButton = 64
	MouseWheelDown MouseButton = 65
)

// Button encoding within the first parameter of a mouse report
const (
	mouseMotion   = 0b00100000
	mouseButtons  = 0b11000011
	mouseModShift = 0b00000100
	mouseModAlt   = 0b00001000
	mouseModCtrl  = 0b00010000
)

// decodeMouseButton splits the button parameter of a mouse report into its
// button, event type, and modifier components.
func decodeMouseButton(b int, release bool) (button MouseButton, et EventType, mods ModifierMask) {
	button = MouseButton(b & mouseButtons)
	et = EventPress
	if release {
		et = EventRelease
	}
	if b&mouseMotion != 0 {
		et = EventMotion
	}
	if b&mouseModShift != 0 {
		mods |= ModShift
	}
	if b&mouseModAlt != 0 {
		mods |= ModAlt
	}
	if b&mouseModCtrl != 0 {
		mods |= ModCtrl
	}
	return button, et, mods
}

// decodeSGRMouse decodes an SGR-encoded mouse report: \x1b[<b;x;yM for a
// press and \x1b[<b;x;ym for a release. Coordinates are 1-based.
func decodeSGRMouse(params []int, final rune) (Mouse, bool) {
	if len(params) != 3 {
		return Mouse{}, false
	}
	button, et, mods := decodeMouseButton(params[0], final == 'm')
	return Mouse{
		Button:    button,
		Col:       params[1] - 1,
		Row:       params[2] - 1,
		EventType: et,
		Modifiers: mods,
	}, true
}

// decodeX10Mouse decodes a legacy X10 mouse report: \x1b[M followed by three
// bytes, each offset by 32. X10 reports carry no release button, so button 3
// doubles as "release".
func decodeX10Mouse(cb, cx, cy byte) Mouse {
	b := int(cb) - 32
	release := b&mouseButtons == 3
	button, et, mods := decodeMouseButton(b, release)
	if release {
		button = MouseNoButton
	}
	return Mouse{
		Button:    button,
		Col:       int(cx) - 33,
		Row:       int(cy) - 33,
		EventType: et,
		Modifiers: mods,
	}
}
