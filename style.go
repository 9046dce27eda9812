package phantom

import (
	"strconv"
	"strings"
)

// Style contains the data required to style a Cell
type Style struct {
	// Foreground is the color to apply to the foreground of this cell
	Foreground Color
	// Background is the color to apply to the background of this cell
	Background Color
	// Attribute represents all other style information for this cell
	// (bold, dim, italic, etc)
	Attribute AttributeMask
}

// AttributeMask represents a bitmask of boolean attributes to style a cell
type AttributeMask uint8

// AttrNone is the empty attribute set
const AttrNone AttributeMask = 0

const (
	AttrBold AttributeMask = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrInvisible
	AttrStrikethrough
)

var attrParams = []struct {
	attr  AttributeMask
	param string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrReverse, "7"},
	{AttrInvisible, "8"},
	{AttrStrikethrough, "9"},
}

// sgr returns the style as a single SGR sequence, starting from a reset so
// one emission fully describes the cell
func (s Style) sgr() string {
	b := &strings.Builder{}
	b.WriteString("\x1b[0")
	for _, ap := range attrParams {
		if s.Attribute&ap.attr != 0 {
			b.WriteByte(';')
			b.WriteString(ap.param)
		}
	}
	writeColor(b, s.Foreground, "38")
	writeColor(b, s.Background, "48")
	b.WriteByte('m')
	return b.String()
}

// writeColor appends the foreground (base 38) or background (base 48)
// selection for c; the default color appends nothing
func writeColor(b *strings.Builder, c Color, base string) {
	switch {
	case c&indexed != 0:
		b.WriteByte(';')
		b.WriteString(base)
		b.WriteString(";5;")
		b.WriteString(strconv.Itoa(int(uint8(c))))
	case c&rgb != 0:
		b.WriteByte(';')
		b.WriteString(base)
		b.WriteString(";2;")
		b.WriteString(strconv.Itoa(int(uint8(c >> 16))))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(int(uint8(c >> 8))))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(int(uint8(c))))
	}
}
