package logio

import (
	"bytes"
	"sync"
)

// Writer adapts a printf-style logging function, like testing.T.Logf, into an
// io.Writer: each complete line written is logged as one message, with any
// Prefix prepended.
type Writer struct {
	Logf   func(mess string, args ...interface{})
	Prefix string

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write buffers p, logging any lines it completes. Safe for use from multiple
// goroutines; never fails.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	for {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		lw.logLine(lw.buf.Next(i))
		lw.buf.Next(1)
	}
	return len(p), nil
}

// Close logs any final unterminated line.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.buf.Len() > 0 {
		lw.logLine(lw.buf.Next(lw.buf.Len()))
	}
	return nil
}

func (lw *Writer) logLine(line []byte) {
	lw.Logf("%s%s", lw.Prefix, line)
}
