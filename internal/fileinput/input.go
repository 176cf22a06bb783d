package fileinput

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string {
	if loc.Line <= 0 {
		return loc.Name
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

// Source is the complete text of one input stream.
type Source struct {
	Name string
	Text string
}

// At returns a location within the source.
func (src Source) At(line int) Location { return Location{src.Name, line} }

func (src Source) String() string { return fmt.Sprintf("%v (%v bytes)", src.Name, len(src.Text)) }

// Input implements sequential reading through a Queue of one or more input
// streams, each read whole. The last read source is kept to facilitate user
// feedback.
type Input struct {
	Queue []io.Reader
	Last  Source
}

// Open queues the named files, failing on the first that cannot be opened.
// Any already opened files are closed on failure.
func Open(names ...string) (*Input, error) {
	var in Input
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			in.Close()
			return nil, err
		}
		in.Queue = append(in.Queue, f)
	}
	return &in, nil
}

// Next reads the next queued stream to its end, closing it if it is an
// io.Closer. Returns io.EOF after the queue is drained.
func (in *Input) Next() (Source, error) {
	if len(in.Queue) == 0 {
		return Source{}, io.EOF
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]

	var sb strings.Builder
	_, err := io.Copy(&sb, r)
	if cl, ok := r.(io.Closer); ok {
		if cerr := cl.Close(); err == nil {
			err = cerr
		}
	}
	in.Last = Source{Name: nameOf(r), Text: sb.String()}
	if err != nil {
		return in.Last, fmt.Errorf("failed to read %v: %w", in.Last.Name, err)
	}
	return in.Last, nil
}

// Close closes every queued stream that is an io.Closer.
func (in *Input) Close() (rerr error) {
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); rerr == nil {
				rerr = cerr
			}
		}
	}
	in.Queue = nil
	return rerr
}

// NamedReader attaches a name to a reader, as reported by Source.Name.
func NamedReader(name string, r io.Reader) io.Reader {
	return namedReader{name, r}
}

type namedReader struct {
	name string
	io.Reader
}

func (nr namedReader) Name() string { return nr.name }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
