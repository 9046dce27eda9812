package phantom

// CellGrid is a width×height array of Cells, row-major
type CellGrid struct {
	cols  int
	rows  int
	cells []Cell
}

// NewCellGrid allocates a grid of empty cells
func NewCellGrid(cols int, rows int) *CellGrid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &CellGrid{
		cols:  cols,
		rows:  rows,
		cells: make([]Cell, cols*rows),
	}
}

// Size returns the grid dimensions
func (g *CellGrid) Size() (cols int, rows int) {
	return g.cols, g.rows
}

// Cell returns the cell at col, row. Out-of-bounds coordinates return an
// empty Cell.
func (g *CellGrid) Cell(col int, row int) Cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return Cell{}
	}
	return g.cells[row*g.cols+col]
}

// SetCell sets the cell at col, row. Out-of-bounds coordinates are ignored.
func (g *CellGrid) SetCell(col int, row int, cell Cell) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row*g.cols+col] = cell
}

// Fill sets every cell in the grid
func (g *CellGrid) Fill(cell Cell) {
	for i := range g.cells {
		g.cells[i] = cell
	}
}

// WriteString writes a string into the grid starting at col, row, one
// grapheme per cell with continuation slots after wide characters. It
// returns the column after the last written cell.
func (g *CellGrid) WriteString(col int, row int, s string, style Style, method WidthMethod) int {
	for _, ch := range Characters(s, method) {
		if col >= g.cols {
			break
		}
		g.SetCell(col, row, Cell{
			Character: ch.Grapheme,
			Width:     ch.Width,
			Style:     style,
		})
		col += ch.Width
	}
	return col
}

// Resize reallocates the grid, preserving the overlapping top-left rectangle
// of prior content. Newly exposed cells are empty.
func (g *CellGrid) Resize(cols int, rows int) {
	if cols == g.cols && rows == g.rows {
		return
	}
	next := NewCellGrid(cols, rows)
	copyRows := g.rows
	if rows < copyRows {
		copyRows = rows
	}
	copyCols := g.cols
	if cols < copyCols {
		copyCols = cols
	}
	for row := 0; row < copyRows; row += 1 {
		copy(
			next.cells[row*cols:row*cols+copyCols],
			g.cells[row*g.cols:row*g.cols+copyCols],
		)
	}
	g.cols = next.cols
	g.rows = next.rows
	g.cells = next.cells
}
