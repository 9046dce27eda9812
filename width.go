package phantom

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// WidthMethod selects the display-width oracle used to size cells. Terminals
// that render complex graphemes properly agree with the unicode standard
// measurement; older ones advance the cursor per wcwidth.
type WidthMethod int

const (
	// WidthUnicode measures extended grapheme clusters per the unicode
	// standard
	WidthUnicode WidthMethod = iota
	// WidthWC measures rune by rune, wcwidth style, skipping variation
	// selectors
	WidthWC
)

// Width returns the number of terminal columns the grapheme occupies: 0, 1,
// or 2
func (m WidthMethod) Width(s string) int {
	switch m {
	case WidthWC:
		total := 0
		for _, r := range s {
			if r >= 0xFE00 && r <= 0xFE0F {
				// Variation Selectors 1 - 16
				continue
			}
			if r >= 0xE0100 && r <= 0xE01EF {
				// Variation Selectors 17-256
				continue
			}
			total += runewidth.RuneWidth(r)
		}
		return total
	default:
		return uniseg.StringWidth(s)
	}
}
