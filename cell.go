package phantom

// Cell is one display unit of the grid
type Cell struct {
	// Character is the extended grapheme cluster shown in this cell. An
	// empty Character renders as a space.
	Character string
	// Width is the number of columns the character occupies (1 or 2). A
	// wide character's trailing column is a continuation slot and is
	// skipped during rendering. Zero means the renderer measures the
	// character itself.
	Width int
	// Style is the visual styling of this cell
	Style Style
}
