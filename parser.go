package phantom

import (
	"bytes"
	"time"
	"unicode/utf8"
)

// parseState tracks what the pending buffer currently holds
type parseState int

const (
	stateGround parseState = iota
	stateEscape            // lone ESC, could be a key or a sequence opener
	stateCSI               // inside \x1b[ ...
	stateSS3               // inside \x1bO ...
	stateX10Mouse          // inside \x1b[M, collecting three coordinate bytes
	statePaste             // inside a bracketed paste
)

// Bracketed paste sentinels
const (
	pasteStart = "\x1b[200~"
	pasteEnd   = "\x1b[201~"
)

// InputParser incrementally decodes raw terminal bytes into events. Bytes
// that cannot be classified yet — a lone ESC, a partial CSI sequence, a
// truncated UTF-8 rune — are buffered across Feed calls. The caller resolves
// the ESC ambiguity by invoking FlushPending once per loop iteration: a
// buffered ESC older than the timeout is emitted as a standalone escape key.
//
// Malformed sequences are discarded and parsing resumes at the next byte;
// feeding garbage is never fatal.
type InputParser struct {
	state   parseState
	timeout time.Duration

	// escape/CSI/SS3 accumulation
	params       []int
	intermediate []byte
	started      time.Time

	// X10 mouse coordinate bytes
	x10 []byte

	// partial UTF-8 rune spanning two reads
	partial []byte

	// bracketed paste accumulation; pasteMatch counts how many bytes of
	// the end sentinel have been seen
	paste      bytes.Buffer
	pasteMatch int
}

// NewInputParser returns a parser whose lone-ESC ambiguity window is timeout.
// A timeout of zero or below falls back to DefaultEscTimeout.
func NewInputParser(timeout time.Duration) *InputParser {
	if timeout <= 0 {
		timeout = DefaultEscTimeout
	}
	return &InputParser{timeout: timeout}
}

// DefaultEscTimeout is the lone-ESC ambiguity window when none is configured.
// Terminal emulators deliver complete escape sequences in one burst, so a
// short window suffices; the effective floor is the loop iteration interval.
const DefaultEscTimeout = 10 * time.Millisecond

// Feed advances the parser with freshly read bytes, pushing any completed
// events into q. It reports whether at least one event was produced.
func (p *InputParser) Feed(q *EventQueue, buf []byte, now time.Time) bool {
	produced := false
	for _, b := range buf {
		if p.feedByte(q, b, now) {
			produced = true
		}
	}
	return produced
}

// FlushPending resolves a timed-out partial sequence. A lone ESC buffered for
// longer than the timeout becomes a standalone escape key; a stalled CSI or
// SS3 prefix is treated the same way, with the partial body discarded. It
// reports whether an event was produced.
func (p *InputParser) FlushPending(q *EventQueue, now time.Time) bool {
	switch p.state {
	case stateEscape, stateCSI, stateSS3, stateX10Mouse:
		if now.Sub(p.started) < p.timeout {
			return false
		}
		p.reset()
		p.push(q, Key{Codepoint: KeyEsc, EventType: EventPress})
		return true
	}
	return false
}

func (p *InputParser) feedByte(q *EventQueue, b byte, now time.Time) bool {
	switch p.state {
	case stateGround:
		return p.ground(q, b, now)
	case stateEscape:
		return p.escape(q, b, now)
	case stateCSI:
		return p.csi(q, b)
	case stateSS3:
		return p.ss3(q, b)
	case stateX10Mouse:
		p.x10 = append(p.x10, b)
		if len(p.x10) < 3 {
			return false
		}
		mouse := decodeX10Mouse(p.x10[0], p.x10[1], p.x10[2])
		p.reset()
		p.push(q, mouse)
		return true
	case statePaste:
		return p.pasteByte(q, b)
	}
	return false
}

func (p *InputParser) ground(q *EventQueue, b byte, now time.Time) bool {
	switch {
	case len(p.partial) > 0 || b >= 0x80:
		return p.utf8Byte(q, b, now)
	case b == 0x1B:
		p.state = stateEscape
		p.started = now
		return false
	case b < 0x20 || b == 0x7F:
		p.push(q, Key{Codepoint: rune(b), EventType: EventPress})
		return true
	default:
		p.push(q, Key{Codepoint: rune(b), EventType: EventPress})
		return true
	}
}

// utf8Byte accumulates multi-byte runes, retaining a truncated tail for the
// next read and resynchronizing on invalid input. Leftover bytes reenter the
// full classifier, so a sequence starting right after a malformed rune still
// decodes as a sequence.
func (p *InputParser) utf8Byte(q *EventQueue, b byte, now time.Time) bool {
	p.partial = append(p.partial, b)
	if !utf8.FullRune(p.partial) {
		if len(p.partial) >= utf8.UTFMax {
			// Not a valid rune at any length: drop the lead byte
			// and reparse from the next
			return p.reparse(q, p.partial[1:], now)
		}
		return false
	}
	r, size := utf8.DecodeRune(p.partial)
	rest := p.partial[size:]
	if r == utf8.RuneError {
		return p.reparse(q, rest, now)
	}
	p.push(q, Key{Codepoint: r, EventType: EventPress})
	p.reparse(q, rest, now)
	return true
}

// reparse clears the partial buffer and feeds the given tail back through the
// byte classifier
func (p *InputParser) reparse(q *EventQueue, rest []byte, now time.Time) bool {
	tail := append([]byte{}, rest...)
	p.partial = p.partial[:0]
	produced := false
	for _, rb := range tail {
		if p.feedByte(q, rb, now) {
			produced = true
		}
	}
	return produced
}

func (p *InputParser) escape(q *EventQueue, b byte, now time.Time) bool {
	switch {
	case b == '[':
		p.state = stateCSI
		return false
	case b == 'O':
		p.state = stateSS3
		return false
	case b == 0x1B:
		// ESC ESC: the first is a standalone escape, the second opens
		// a new tentative sequence
		p.started = now
		p.push(q, Key{Codepoint: KeyEsc, EventType: EventPress})
		return true
	case b >= 0x20 && b < 0x7F:
		// ESC followed by a printable is an alt-modified key
		p.reset()
		p.push(q, Key{
			Codepoint: rune(b),
			Modifiers: ModAlt,
			EventType: EventPress,
		})
		return true
	default:
		// ESC + control byte: emit both
		p.reset()
		p.push(q, Key{Codepoint: KeyEsc, EventType: EventPress})
		p.push(q, Key{Codepoint: rune(b), EventType: EventPress})
		return true
	}
}

func (p *InputParser) csi(q *EventQueue, b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		if len(p.params) == 0 {
			p.params = append(p.params, 0)
		}
		p.params[len(p.params)-1] = p.params[len(p.params)-1]*10 + int(b-'0')
		return false
	case b == ';':
		if len(p.params) == 0 {
			p.params = append(p.params, 0)
		}
		p.params = append(p.params, 0)
		return false
	case b >= 0x20 && b <= 0x3F:
		// private markers and intermediates ('<', '?', ...)
		p.intermediate = append(p.intermediate, b)
		return false
	case b >= 0x40 && b <= 0x7E:
		return p.csiFinal(q, rune(b))
	default:
		// Malformed: discard and resynchronize
		p.reset()
		return false
	}
}

func (p *InputParser) csiFinal(q *EventQueue, final rune) bool {
	params := p.params
	private := len(p.intermediate) > 0 && p.intermediate[0] == '<'

	switch {
	case final == 'M' && len(params) == 0 && !private:
		// Legacy X10 mouse: three coordinate bytes follow
		p.params = nil
		p.intermediate = nil
		p.x10 = p.x10[:0]
		p.state = stateX10Mouse
		return false
	case private && (final == 'M' || final == 'm'):
		p.reset()
		if mouse, ok := decodeSGRMouse(params, final); ok {
			p.push(q, mouse)
			return true
		}
		return false
	case final == 'I':
		p.reset()
		p.push(q, FocusIn{})
		return true
	case final == 'O':
		p.reset()
		p.push(q, FocusOut{})
		return true
	case final == '~' && len(params) == 1 && params[0] == 200:
		p.reset()
		p.state = statePaste
		p.paste.Reset()
		p.pasteMatch = 0
		return false
	}

	p.reset()
	if key, ok := decodeCSIKey(params, final); ok {
		p.push(q, key)
		return true
	}
	// Unrecognized CSI: discard silently
	return false
}

func (p *InputParser) ss3(q *EventQueue, b byte) bool {
	p.reset()
	if key, ok := decodeSS3Key(rune(b)); ok {
		p.push(q, key)
		return true
	}
	return false
}

// pasteByte accumulates paste content while watching for the end sentinel.
// Sentinel bytes are withheld from the payload until a prefix match fails.
func (p *InputParser) pasteByte(q *EventQueue, b byte) bool {
	if b == pasteEnd[p.pasteMatch] {
		p.pasteMatch += 1
		if p.pasteMatch == len(pasteEnd) {
			content := p.paste.String()
			p.reset()
			p.paste.Reset()
			p.push(q, Paste(content))
			return true
		}
		return false
	}
	if p.pasteMatch > 0 {
		p.paste.WriteString(pasteEnd[:p.pasteMatch])
		p.pasteMatch = 0
		// The failing byte may itself restart the sentinel
		return p.pasteByte(q, b)
	}
	p.paste.WriteByte(b)
	return false
}

func (p *InputParser) reset() {
	p.state = stateGround
	p.params = nil
	p.intermediate = nil
	p.x10 = p.x10[:0]
	p.pasteMatch = 0
}

func (p *InputParser) push(q *EventQueue, ev Event) {
	// Shutdown refusals are deliberate drops, not parse failures
	_ = q.PushAuto(ev)
}
