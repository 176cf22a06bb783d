package flushio

import (
	"bufio"
	"bytes"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// buffer is implemented by in memory buffers like bytes.Buffer and
// strings.Builder, which need no flushing.
type buffer interface {
	io.Writer
	Cap() int
	Len() int
	Grow(n int)
	Reset()
}

// NewWriteFlusher returns w itself if it is already a WriteFlusher, w with a
// noop Flush if it needs no buffering (io.Discard or an in memory buffer),
// and a new bufio.Writer around w otherwise.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case buffer:
		return nopFlusher{w}
	}
	if w == io.Discard {
		return nopFlusher{w}
	}
	return bufio.NewWriter(w)
}

// LineFlusher buffers writes like a bufio.Writer, but flushes after any write
// that contains a newline; e.g. for output to an interactive terminal.
type LineFlusher struct{ *bufio.Writer }

// NewLineFlusher creates a LineFlusher around w.
func NewLineFlusher(w io.Writer) LineFlusher {
	return LineFlusher{bufio.NewWriter(w)}
}

func (lf LineFlusher) Write(p []byte) (int, error) {
	n, err := lf.Writer.Write(p)
	if err == nil && bytes.IndexByte(p, '\n') >= 0 {
		err = lf.Writer.Flush()
	}
	return n, err
}

// WriteString is like Write, overriding the bufio.Writer method so that
// io.WriteString also flushes lines.
func (lf LineFlusher) WriteString(s string) (int, error) {
	return lf.Write([]byte(s))
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }
