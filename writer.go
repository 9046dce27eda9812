package phantom

import (
	"bytes"
	"fmt"
	"io"
)

// writer buffers one frame's worth of escape sequences so a render reaches
// the terminal in a single write. The buffer is reset on flush.
type writer struct {
	buf *bytes.Buffer
	out io.Writer
}

func newWriter(out io.Writer) *writer {
	return &writer{
		buf: bytes.NewBuffer(make([]byte, 0, 8192)),
		out: out,
	}
}

func (w *writer) Write(p []byte) (n int, err error) {
	return w.buf.Write(p)
}

func (w *writer) WriteString(s string) (n int, err error) {
	return w.buf.WriteString(s)
}

func (w *writer) Printf(s string, args ...any) (n int, err error) {
	return fmt.Fprintf(w.buf, s, args...)
}

func (w *writer) Len() int {
	return w.buf.Len()
}

func (w *writer) Flush() (n int, err error) {
	if w.buf.Len() == 0 {
		return 0, nil
	}
	defer w.buf.Reset()
	return w.out.Write(w.buf.Bytes())
}
