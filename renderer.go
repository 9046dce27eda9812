package phantom

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slog"
	"golang.org/x/term"
)

type cursorState struct {
	row     int
	col     int
	visible bool
}

// Renderer owns the front/back double buffer, the diff pass that turns it
// into escape sequences, and the raw-mode terminal lifecycle. The front
// buffer holds what was last written to the terminal; the application
// composes into the back buffer and calls Render.
//
// The back buffer is not cleared by Render: overwrite every cell you care
// about each frame, or stale content persists.
type Renderer struct {
	tty    *os.File // nil when rendering to a plain writer
	w      *writer
	front  *CellGrid
	back   *CellGrid
	method WidthMethod
	log    *slog.Logger

	rawState   *term.State
	nextCursor cursorState
	lastCursor cursorState
}

// NewRenderer builds a renderer for the given terminal, typically os.Stdout,
// sized via the window-size fallback chain.
func NewRenderer(tty *os.File, opts Options) *Renderer {
	cols, rows := windowSize(tty)
	r := newRenderer(tty, cols, rows, opts)
	r.tty = tty
	return r
}

func newRenderer(out io.Writer, cols int, rows int, opts Options) *Renderer {
	return &Renderer{
		w:      newWriter(out),
		front:  NewCellGrid(cols, rows),
		back:   NewCellGrid(cols, rows),
		method: opts.WidthMethod,
		log:    opts.logger(),
	}
}

// Size returns the current grid dimensions
func (r *Renderer) Size() (cols int, rows int) {
	return r.back.Size()
}

// SetCell composes a cell into the back buffer. A zero Width is measured
// with the configured width oracle.
func (r *Renderer) SetCell(col int, row int, cell Cell) {
	if cell.Width == 0 {
		cell.Width = r.cellWidth(cell)
	}
	r.back.SetCell(col, row, cell)
}

// WriteString composes a string into the back buffer starting at col, row.
// It returns the column after the last written cell.
func (r *Renderer) WriteString(col int, row int, s string, style Style) int {
	return r.back.WriteString(col, row, s, style, r.method)
}

// ShowCursor places the hardware cursor at col, row on the next Render.
// Coordinates are 0-indexed.
func (r *Renderer) ShowCursor(col int, row int) {
	r.nextCursor = cursorState{col: col, row: row, visible: true}
}

// HideCursor hides the hardware cursor on the next Render
func (r *Renderer) HideCursor() {
	r.nextCursor.visible = false
}

// SetTitle queues an OSC 2 window title change, delivered with the next
// Render's flush
func (r *Renderer) SetTitle(title string) {
	r.w.Printf(setTitle, title)
}

// Resize reallocates both grids, preserving the overlapping top-left
// rectangle. Newly exposed area diffs as dirty on the next Render.
func (r *Renderer) Resize(cols int, rows int) {
	oldCols, oldRows := r.front.Size()
	r.front.Resize(cols, rows)
	r.back.Resize(cols, rows)
	// Seed the exposed area of the front buffer with a cell no composed
	// cell can equal, so the next diff repaints it even where the
	// application composes nothing
	for row := 0; row < rows; row += 1 {
		for col := 0; col < cols; col += 1 {
			if row < oldRows && col < oldCols {
				continue
			}
			r.front.SetCell(col, row, Cell{Width: -1})
		}
	}
}

// Render diffs the back buffer against the front buffer, writes the minimal
// escape-sequence output in one flush, and swaps the buffers. Cursor moves
// are emitted only where runs of equal cells break, and a style sequence is
// emitted only when it differs from the most recently emitted style.
func (r *Renderer) Render() error {
	var lastStyle Style
	styleSet := false
	reposition := true

	cols, rows := r.back.Size()
	for row := 0; row < rows; row += 1 {
		for col := 0; col < cols; col += 1 {
			next := r.back.Cell(col, row)
			width := next.Width
			if width < 1 {
				width = r.cellWidth(next)
			}
			if next == r.front.Cell(col, row) {
				reposition = true
				col += width - 1
				continue
			}
			if reposition {
				r.w.Printf(cup, row+1, col+1)
				reposition = false
			}
			if !styleSet || next.Style != lastStyle {
				r.w.WriteString(next.Style.sgr())
				lastStyle = next.Style
				styleSet = true
			}
			if next.Character == "" {
				r.w.WriteString(" ")
			} else {
				r.w.WriteString(next.Character)
			}
			// The trailing column of a wide character is a
			// continuation slot
			col += width - 1
		}
	}
	r.w.WriteString(sgrReset)

	switch {
	case r.nextCursor.visible:
		r.w.Printf(cup, r.nextCursor.row+1, r.nextCursor.col+1)
		r.w.WriteString(decset(cursorVisibility))
	case r.lastCursor.visible:
		r.w.WriteString(decrst(cursorVisibility))
	}

	n, err := r.w.Flush()
	if err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	r.log.Debug("flushed", "bytes", n)
	r.lastCursor = r.nextCursor
	r.front, r.back = r.back, r.front
	return nil
}

func (r *Renderer) cellWidth(cell Cell) int {
	if cell.Character == "" {
		return 1
	}
	w := r.method.Width(cell.Character)
	if w < 1 {
		return 1
	}
	return w
}

// EnterRawMode captures the terminal's original attributes, disables
// canonical processing, echo, and signal generation, switches to the
// alternate screen, hides the cursor, and enables the input modes the parser
// consumes (bracketed paste, SGR mouse, focus reporting).
func (r *Renderer) EnterRawMode() error {
	if r.tty == nil {
		return fmt.Errorf("no terminal attached")
	}
	state, err := term.MakeRaw(int(r.tty.Fd()))
	if err != nil {
		return fmt.Errorf("make raw: %w", err)
	}
	r.rawState = state
	r.w.WriteString(decset(alternateScreen))
	r.w.WriteString(decrst(cursorVisibility))
	r.w.WriteString(decset(bracketedPaste))
	r.w.WriteString(decset(mouseSGR))
	r.w.WriteString(decset(mouseAllEvents))
	r.w.WriteString(decset(mouseFocusEvents))
	r.w.WriteString(clear)
	r.w.WriteString(home)
	if _, err := r.w.Flush(); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	return nil
}

// ExitRawMode performs the exact inverse of EnterRawMode in reverse order:
// disable input modes, clear the alternate screen, show the cursor, leave
// the alternate screen, restore the original attributes. A crash partway
// leaves the terminal as recoverable as possible.
func (r *Renderer) ExitRawMode() error {
	if r.tty == nil || r.rawState == nil {
		return nil
	}
	r.w.WriteString(decrst(mouseFocusEvents))
	r.w.WriteString(decrst(mouseAllEvents))
	r.w.WriteString(decrst(mouseSGR))
	r.w.WriteString(decrst(bracketedPaste))
	r.w.WriteString(clear)
	r.w.WriteString(decset(cursorVisibility))
	r.w.WriteString(decrst(alternateScreen))
	if _, err := r.w.Flush(); err != nil {
		return fmt.Errorf("exit raw mode: %w", err)
	}
	if err := term.Restore(int(r.tty.Fd()), r.rawState); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	r.rawState = nil
	return nil
}
