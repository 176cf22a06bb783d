package flushio

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriteFlusher(t *testing.T) {
	t.Run("buffer", func(t *testing.T) {
		var buf bytes.Buffer
		wf := NewWriteFlusher(&buf)
		io.WriteString(wf, "hello")
		assert.Equal(t, "hello", buf.String(), "expected buffers to be written through")
		assert.NoError(t, wf.Flush())
	})

	t.Run("builder", func(t *testing.T) {
		var sb strings.Builder
		wf := NewWriteFlusher(&sb)
		io.WriteString(wf, "hello")
		assert.Equal(t, "hello", sb.String(), "expected builders to be written through")
	})

	t.Run("discard", func(t *testing.T) {
		wf := NewWriteFlusher(io.Discard)
		_, err := io.WriteString(wf, "nothing")
		assert.NoError(t, err)
		assert.NoError(t, wf.Flush())
	})

	t.Run("existing", func(t *testing.T) {
		bw := bufio.NewWriter(io.Discard)
		assert.Equal(t, WriteFlusher(bw), NewWriteFlusher(bw), "expected a WriteFlusher to be returned as is")
	})

	t.Run("file", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer f.Close()

		wf := NewWriteFlusher(f)
		io.WriteString(wf, "buffered")
		require.NoError(t, wf.Flush())

		b, err := os.ReadFile(f.Name())
		require.NoError(t, err)
		assert.Equal(t, "buffered", string(b))
	})
}

type countWriter struct {
	bytes.Buffer
	writes int
}

func (cw *countWriter) Write(p []byte) (int, error) {
	cw.writes++
	return cw.Buffer.Write(p)
}

func TestLineFlusher(t *testing.T) {
	var cw countWriter
	lf := NewLineFlusher(&cw)
	assert.Equal(t, WriteFlusher(lf), NewWriteFlusher(lf), "expected a LineFlusher to be used as is")

	io.WriteString(lf, "partial")
	assert.Equal(t, "", cw.String(), "expected an incomplete line to stay buffered")

	io.WriteString(lf, " line\nmore")
	assert.Equal(t, "partial line\nmore", cw.String(), "expected a newline to flush everything buffered")
	assert.Equal(t, 1, cw.writes)

	lf.Write([]byte("\n"))
	assert.Equal(t, "partial line\nmore\n", cw.String())
	assert.Equal(t, 2, cw.writes)
}
