package phantom

// Color is a terminal color. The zero value is the terminal's default
// foreground or background color.
type Color uint32

// Tag bits distinguishing the palette form from direct rgb. The low 24 bits
// hold the payload.
const (
	indexed Color = 1 << 24
	rgb     Color = 1 << 25
)

// IndexColor selects an entry of the terminal's 256-color palette
func IndexColor(index uint8) Color {
	return Color(index) | indexed
}

// RGBColor is a direct 24-bit color
func RGBColor(r uint8, g uint8, b uint8) Color {
	return Color(uint32(r)<<16|uint32(g)<<8|uint32(b)) | rgb
}
