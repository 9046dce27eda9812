package phantom

import (
	"bytes"
	"fmt"
	"strings"
)

// Key is a keyboard input event. Codepoint is either the character the key
// produced or one of the named Key* values.
type Key struct {
	Codepoint rune
	Modifiers ModifierMask
	EventType EventType
}

// ModifierMask is a bitmask of held modifiers. The values are equivalent to
// the kitty keyboard protocol
type ModifierMask int

const (
	ModShift ModifierMask = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

// EventType is an input event type (press, release, etc)
type EventType int

const (
	// The event type could not be determined
	EventUnknown EventType = iota
	// The key / button was pressed
	EventPress
	// The key / button was repeated
	EventRepeat
	// The key / button was released
	EventRelease
	// The mouse moved with a button held
	EventMotion
)

// Modified keys will always have prefixes in this order:
//
//	<num-caps-meta-hyper-super-c-a-s-{key}>
func (k Key) String() string {
	buf := &bytes.Buffer{}
	if k.Modifiers != 0 || k.Codepoint > extended ||
		k.Codepoint == KeyTab || k.Codepoint == KeySpace ||
		k.Codepoint == KeyEsc || k.Codepoint == KeyEnter ||
		k.Codepoint == KeyBackspace {
		buf.WriteRune('<')
	}

	if k.Modifiers&ModNumLock != 0 {
		buf.WriteString("num-")
	}
	if k.Modifiers&ModCapsLock != 0 {
		buf.WriteString("caps-")
	}
	if k.Modifiers&ModMeta != 0 {
		buf.WriteString("meta-")
	}
	if k.Modifiers&ModHyper != 0 {
		buf.WriteString("hyper-")
	}
	if k.Modifiers&ModSuper != 0 {
		buf.WriteString("super-")
	}
	if k.Modifiers&ModCtrl != 0 {
		buf.WriteString("c-")
	}
	if k.Modifiers&ModAlt != 0 {
		buf.WriteString("a-")
	}
	if k.Modifiers&ModShift != 0 {
		buf.WriteString("s-")
	}

	switch {
	case k.Codepoint == KeyTab:
		buf.WriteString("tab")
	case k.Codepoint == KeyEsc:
		buf.WriteString("esc")
	case k.Codepoint == KeySpace:
		buf.WriteString("space")
	case k.Codepoint == KeyEnter:
		buf.WriteString("enter")
	case k.Codepoint == KeyBackspace:
		buf.WriteString("bs")
	case k.Codepoint < 0x00:
		return "<invalid>"
	case k.Codepoint < 0x20:
		// Control keys print as their shifted-up equivalent
		ch := fmt.Sprintf("%c", k.Codepoint+0x40)
		return fmt.Sprintf("<c-%s>", strings.ToLower(ch))
	case k.Codepoint < extended:
		buf.WriteString(strings.ToLower(fmt.Sprintf("%c", k.Codepoint)))
	default:
		buf.WriteString(keyNames[k.Codepoint])
	}

	if strings.HasPrefix(buf.String(), "<") {
		buf.WriteRune('>')
	}
	return buf.String()
}

// Named keys live above the valid unicode range
const extended rune = 1 << 30

const (
	KeyUp rune = extended + 1 + iota
	KeyRight
	KeyDown
	KeyLeft
	KeyInsert
	KeyDelete
	KeyPgDown
	KeyPgUp
	KeyHome
	KeyEnd
	KeyF01
	KeyF02
	KeyF03
	KeyF04
	KeyF05
	KeyF06
	KeyF07
	KeyF08
	KeyF09
	KeyF10
	KeyF11
	KeyF12

	// Aliases
	KeyTab       rune = 0x09
	KeyEnter     rune = 0x0D
	KeyEsc       rune = 0x1B
	KeySpace     rune = 0x20
	KeyBackspace rune = 0x7F
)

var keyNames = map[rune]string{
	KeyUp:     "up",
	KeyRight:  "right",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyInsert: "insert",
	KeyDelete: "delete",
	KeyPgDown: "pgdown",
	KeyPgUp:   "pgup",
	KeyHome:   "home",
	KeyEnd:    "end",
	KeyF01:    "f1",
	KeyF02:    "f2",
	KeyF03:    "f3",
	KeyF04:    "f4",
	KeyF05:    "f5",
	KeyF06:    "f6",
	KeyF07:    "f7",
	KeyF08:    "f8",
	KeyF09:    "f9",
	KeyF10:    "f10",
	KeyF11:    "f11",
	KeyF12:    "f12",
}

// CSI sequences identified by their final byte. Modified variants carry two
// parameters, the first always 1 and the second encoding the modifiers, eg
// \x1b[1;5A for ctrl+up
var csiKeys = map[rune]rune{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// CSI sequences with a '~' final byte, identified by their first parameter.
// An optional second parameter encodes the modifiers, eg \x1b[3;5~ for
// ctrl+delete
var csiTildeKeys = map[int]rune{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPgUp,
	6:  KeyPgDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF01,
	12: KeyF02,
	13: KeyF03,
	14: KeyF04,
	15: KeyF05,
	17: KeyF06,
	18: KeyF07,
	19: KeyF08,
	20: KeyF09,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// SS3 sequences (\x1bO + one byte), sent for F1-F4 everywhere and for
// navigation keys when application cursor keys mode is set
var ss3Keys = map[rune]rune{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF01,
	'Q': KeyF02,
	'R': KeyF03,
	'S': KeyF04,
}

// decodeCSIKey decodes an xterm-style CSI key sequence. It returns false for
// sequences that don't map to a key.
func decodeCSIKey(params []int, final rune) (Key, bool) {
	if cp, ok := csiKeys[final]; ok {
		switch len(params) {
		case 0:
			return Key{Codepoint: cp, EventType: EventPress}, true
		case 2:
			if params[0] != 1 {
				return Key{}, false
			}
			return Key{
				Codepoint: cp,
				Modifiers: decodeXtermMods(params[1]),
				EventType: EventPress,
			}, true
		}
		return Key{}, false
	}

	switch final {
	case 'Z':
		return Key{
			Codepoint: KeyTab,
			Modifiers: ModShift,
			EventType: EventPress,
		}, true
	case '~':
		if len(params) == 0 || len(params) > 2 {
			return Key{}, false
		}
		cp, ok := csiTildeKeys[params[0]]
		if !ok {
			return Key{}, false
		}
		key := Key{Codepoint: cp, EventType: EventPress}
		if len(params) == 2 {
			key.Modifiers = decodeXtermMods(params[1])
		}
		return key, true
	}
	return Key{}, false
}

func decodeSS3Key(final rune) (Key, bool) {
	cp, ok := ss3Keys[final]
	if !ok {
		return Key{}, false
	}
	return Key{Codepoint: cp, EventType: EventPress}, true
}

// decodeXtermMods decodes the modifier parameter of a CSI key sequence. The
// encoded value is the modifier bitmask plus one.
func decodeXtermMods(param int) ModifierMask {
	var mods ModifierMask
	if param < 2 {
		return mods
	}
	param -= 1
	if param&1 != 0 {
		mods |= ModShift
	}
	if param&2 != 0 {
		mods |= ModAlt
	}
	if param&4 != 0 {
		mods |= ModCtrl
	}
	if param&8 != 0 {
		mods |= ModMeta
	}
	return mods
}
