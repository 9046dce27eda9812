package phantom

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(cols int, rows int) (*Renderer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return newRenderer(buf, cols, rows, Options{}), buf
}

func renderToString(t *testing.T, r *Renderer, buf *bytes.Buffer) string {
	t.Helper()
	buf.Reset()
	require.NoError(t, r.Render())
	return buf.String()
}

func TestRenderEmptyFrame(t *testing.T) {
	r, buf := testRenderer(4, 2)
	assert.Equal(t, sgrReset, renderToString(t, r, buf))
}

func TestRenderSingleCell(t *testing.T) {
	r, buf := testRenderer(8, 4)
	r.SetCell(2, 3, Cell{Character: "x"})

	want := tparm(cup, 4, 3) + Style{}.sgr() + "x" + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestRenderStyleRun(t *testing.T) {
	r, buf := testRenderer(8, 1)
	bold := Style{Attribute: AttrBold}
	r.WriteString(0, 0, "abc", bold)

	// One cursor move and one style sequence cover the whole run
	want := tparm(cup, 1, 1) + bold.sgr() + "abc" + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestRenderStyleChangeWithinRun(t *testing.T) {
	r, buf := testRenderer(8, 1)
	bold := Style{Attribute: AttrBold}
	r.SetCell(0, 0, Cell{Character: "a", Style: bold})
	r.SetCell(1, 0, Cell{Character: "b"})

	want := tparm(cup, 1, 1) + bold.sgr() + "a" + Style{}.sgr() + "b" + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestRenderRepositionAcrossGap(t *testing.T) {
	r, buf := testRenderer(10, 1)
	r.SetCell(0, 0, Cell{Character: "a"})
	r.SetCell(5, 0, Cell{Character: "b"})

	// The unchanged gap breaks the run; the style does not repeat
	want := tparm(cup, 1, 1) + Style{}.sgr() + "a" +
		tparm(cup, 1, 6) + "b" + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestRenderDiffMinimal(t *testing.T) {
	r, buf := testRenderer(10, 2)
	r.WriteString(0, 0, "hello", Style{})
	renderToString(t, r, buf)

	// Recompose the same frame with one changed cell
	r.WriteString(0, 0, "hallo", Style{})
	want := tparm(cup, 1, 2) + Style{}.sgr() + "a" + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestRenderIdenticalFrame(t *testing.T) {
	r, buf := testRenderer(10, 2)
	r.WriteString(0, 0, "hello", Style{})
	renderToString(t, r, buf)

	// The swap leaves last frame's cells in the front buffer, so an
	// identical recomposition diffs to nothing
	r.WriteString(0, 0, "hello", Style{})
	assert.Equal(t, sgrReset, renderToString(t, r, buf))
}

func TestRenderWideCharacter(t *testing.T) {
	r, buf := testRenderer(10, 1)
	r.WriteString(0, 0, "日a", Style{})

	// The continuation slot is skipped without a cursor move
	want := tparm(cup, 1, 1) + Style{}.sgr() + "日a" + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestRenderEmptyCharacterAsSpace(t *testing.T) {
	r, buf := testRenderer(4, 1)
	r.SetCell(0, 0, Cell{Style: Style{Attribute: AttrReverse}})

	want := tparm(cup, 1, 1) + Style{Attribute: AttrReverse}.sgr() + " " + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestRenderColors(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  string
	}{
		{"default", Style{}, "\x1b[0m"},
		{"bold", Style{Attribute: AttrBold}, "\x1b[0;1m"},
		{"bold underline", Style{Attribute: AttrBold | AttrUnderline}, "\x1b[0;1;4m"},
		{"indexed fg", Style{Foreground: IndexColor(1)}, "\x1b[0;38;5;1m"},
		{"indexed bg", Style{Background: IndexColor(240)}, "\x1b[0;48;5;240m"},
		{"rgb fg", Style{Foreground: RGBColor(255, 128, 0)}, "\x1b[0;38;2;255;128;0m"},
		{
			"combined",
			Style{
				Foreground: IndexColor(7),
				Background: RGBColor(0, 0, 0),
				Attribute:  AttrReverse,
			},
			"\x1b[0;7;38;5;7;48;2;0;0;0m",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.style.sgr())
		})
	}
}

func TestRenderCursor(t *testing.T) {
	r, buf := testRenderer(10, 4)

	r.ShowCursor(2, 1)
	want := sgrReset + tparm(cup, 2, 3) + decset(cursorVisibility)
	assert.Equal(t, want, renderToString(t, r, buf))

	// Still visible: repositioned every frame
	assert.Equal(t, want, renderToString(t, r, buf))

	r.HideCursor()
	assert.Equal(t, sgrReset+decrst(cursorVisibility), renderToString(t, r, buf))

	// Already hidden: no further mode traffic
	assert.Equal(t, sgrReset, renderToString(t, r, buf))
}

func TestRenderSetTitle(t *testing.T) {
	r, buf := testRenderer(2, 1)
	r.SetTitle("phantom")

	// Queued ahead of the frame's diff output
	assert.Equal(t, tparm(setTitle, "phantom")+sgrReset, renderToString(t, r, buf))
}

func TestRenderAfterResize(t *testing.T) {
	r, buf := testRenderer(10, 2)
	r.WriteString(0, 0, "ab", Style{})
	renderToString(t, r, buf)

	r.Resize(5, 2)
	cols, rows := r.Size()
	assert.Equal(t, 5, cols)
	assert.Equal(t, 2, rows)

	// Preserved content still diffs clean against the resized front buffer
	r.WriteString(0, 0, "ab", Style{})
	assert.Equal(t, sgrReset, renderToString(t, r, buf))
}

func TestRenderAfterGrowingResize(t *testing.T) {
	r, buf := testRenderer(2, 1)
	r.WriteString(0, 0, "ab", Style{})
	renderToString(t, r, buf)

	r.Resize(4, 1)
	r.WriteString(0, 0, "ab", Style{})

	// The exposed columns repaint even though they are composed empty;
	// whatever the terminal held there must not survive
	want := tparm(cup, 1, 3) + Style{}.sgr() + "  " + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestRenderAfterGrowingRows(t *testing.T) {
	r, buf := testRenderer(2, 1)
	r.WriteString(0, 0, "ab", Style{})
	renderToString(t, r, buf)

	r.Resize(2, 2)
	r.WriteString(0, 0, "ab", Style{})

	want := tparm(cup, 2, 1) + Style{}.sgr() + "  " + sgrReset
	assert.Equal(t, want, renderToString(t, r, buf))
}

func TestGridResizePreservesOverlap(t *testing.T) {
	g := NewCellGrid(10, 5)
	g.SetCell(0, 0, Cell{Character: "a", Width: 1})
	g.SetCell(9, 4, Cell{Character: "z", Width: 1})

	g.Resize(20, 5)
	assert.Equal(t, "a", g.Cell(0, 0).Character)
	assert.Equal(t, "z", g.Cell(9, 4).Character)
	assert.Equal(t, Cell{}, g.Cell(19, 4))

	g.Resize(5, 5)
	assert.Equal(t, "a", g.Cell(0, 0).Character)
	// Content beyond the new bounds is gone, and reads are safe
	assert.Equal(t, Cell{}, g.Cell(9, 4))
}

func TestGridWriteStringClipsAtEdge(t *testing.T) {
	g := NewCellGrid(3, 1)
	end := g.WriteString(0, 0, "hello", Style{}, WidthUnicode)
	assert.Equal(t, 3, end)
	assert.Equal(t, "l", g.Cell(2, 0).Character)
}

func TestCharacters(t *testing.T) {
	chars := Characters("a日\t", WidthUnicode)
	require.Len(t, chars, 10)
	assert.Equal(t, Character{"a", 1}, chars[0])
	assert.Equal(t, Character{"日", 2}, chars[1])
	for _, c := range chars[2:] {
		assert.Equal(t, Character{" ", 1}, c)
	}
}

func TestWidthMethods(t *testing.T) {
	assert.Equal(t, 1, WidthUnicode.Width("a"))
	assert.Equal(t, 2, WidthUnicode.Width("日"))
	assert.Equal(t, 2, WidthWC.Width("日"))
}

func TestWindowSizeFallback(t *testing.T) {
	t.Setenv("COLUMNS", "120")
	t.Setenv("LINES", "40")

	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer f.Close()

	cols, rows := windowSize(f)
	assert.Equal(t, 120, cols)
	assert.Equal(t, 40, rows)
}

func TestWindowSizeDefaults(t *testing.T) {
	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "")

	cols, rows := windowSize(nil)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24, rows)
}
