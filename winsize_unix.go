//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package phantom

import (
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// windowSize reports the terminal dimensions through the fallback chain: the
// OS window-size query first, then the COLUMNS/LINES environment variables,
// then a fixed 80x24.
func windowSize(f *os.File) (cols int, rows int) {
	if f != nil {
		ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
		if err == nil && ws.Col > 0 && ws.Row > 0 {
			return int(ws.Col), int(ws.Row)
		}
	}
	cols, rows = 80, 24
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		cols = v
	}
	if v, err := strconv.Atoi(os.Getenv("LINES")); err == nil && v > 0 {
		rows = v
	}
	return cols, rows
}
