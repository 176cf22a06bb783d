package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/psil/internal/logio"
)

type sessionTestCases []sessionTestCase

func (sts sessionTestCases) run(t *testing.T) {
	{
		var exclusive []sessionTestCase
		for _, st := range sts {
			if st.exclusive {
				exclusive = append(exclusive, st)
			}
		}
		if len(exclusive) > 0 {
			sts = exclusive
		}
	}
	for _, st := range sts {
		if !t.Run(st.name, st.run) {
			return
		}
	}
}

func sessionTest(name string) (st sessionTestCase) {
	st.name = name
	return st
}

type optFunc func(s *Session)

func (f optFunc) apply(s *Session) { f(s) }

type sessionTestCase struct {
	name    string
	opts    []Option
	src     []string
	prog    List
	files   mapFiles
	expect  []func(t *testing.T, s *Session)
	timeout time.Duration
	wantErr error

	exclusive bool
}

func (st sessionTestCase) apply(wraps ...func(sessionTestCase) sessionTestCase) sessionTestCase {
	for _, wrap := range wraps {
		st = wrap(st)
	}
	return st
}

func (st sessionTestCase) exclusiveTest() sessionTestCase {
	st.exclusive = true
	return st
}

func (st sessionTestCase) withOptions(opts ...Option) sessionTestCase {
	st.opts = append(st.opts, opts...)
	return st
}

func (st sessionTestCase) withStack(values ...Value) sessionTestCase {
	st.opts = append(st.opts, optFunc(func(s *Session) {
		for _, v := range values {
			s.stack.Push(v)
		}
	}))
	return st
}

func (st sessionTestCase) withSymbol(name string, v Value) sessionTestCase {
	st.opts = append(st.opts, optFunc(func(s *Session) {
		s.symbols.Bind(name, v)
	}))
	return st
}

func (st sessionTestCase) withFile(path string, text string) sessionTestCase {
	files := make(mapFiles, len(st.files)+1)
	for k, v := range st.files {
		files[k] = v
	}
	files[path] = text
	st.files = files
	return st
}

func (st sessionTestCase) withRecursionLimit(limit int) sessionTestCase {
	st.opts = append(st.opts, WithRecursionLimit(limit))
	return st
}

// withSource adds a source chunk; each chunk is run by its own Eval call
// against the same session, stopping at the first error.
func (st sessionTestCase) withSource(src string) sessionTestCase {
	st.src = append(st.src, src)
	return st
}

// withProg runs an already built program instead of parsing source.
func (st sessionTestCase) withProg(items ...Value) sessionTestCase {
	st.prog = append(st.prog, items...)
	return st
}

func (st sessionTestCase) withTimeout(timeout time.Duration) sessionTestCase {
	st.timeout = timeout
	return st
}

func (st sessionTestCase) expectError(err error) sessionTestCase {
	st.wantErr = err
	return st
}

// expectStack checks the stack, bottom first, by each value's String form.
func (st sessionTestCase) expectStack(values ...string) sessionTestCase {
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		if values == nil {
			values = []string{}
		}
		assert.Equal(t, values, valueStrings(s.Stack()), "expected stack values")
	})
	return st
}

func (st sessionTestCase) expectSymbol(name string, value string) sessionTestCase {
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		v, defined := s.Lookup(name)
		if assert.True(t, defined, "expected symbol %q to be bound", name) {
			assert.Equal(t, value, v.String(), "expected symbol %q value", name)
		}
	})
	return st
}

func (st sessionTestCase) expectUnbound(name string) sessionTestCase {
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		_, defined := s.Lookup(name)
		assert.False(t, defined, "expected symbol %q to be unbound", name)
	})
	return st
}

func (st sessionTestCase) expectSymbolCount(n int) sessionTestCase {
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		assert.Equal(t, n, s.symbols.Len(), "expected symbol count")
	})
	return st
}

func (st sessionTestCase) expectLine(line int) sessionTestCase {
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		assert.Equal(t, line, s.Line(), "expected current line")
	})
	return st
}

func (st sessionTestCase) expectOutput(output string) sessionTestCase {
	var out strings.Builder
	st.opts = append(st.opts, WithOutput(&out))
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return st
}

func (st sessionTestCase) expectDiagnostics(parts ...string) sessionTestCase {
	var diag strings.Builder
	st.opts = append(st.opts, WithDiagnostics(&diag))
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		for _, part := range parts {
			assert.Contains(t, diag.String(), part, "expected diagnostics")
		}
	})
	return st
}

func (st sessionTestCase) expectFile(path string, text string) sessionTestCase {
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		files, _ := s.files.(mapFiles)
		have, exists := files[path]
		if assert.True(t, exists, "expected file %q to exist", path) {
			assert.Equal(t, text, have, "expected file %q contents", path)
		}
	})
	return st
}

func (st sessionTestCase) expectDump(dump string) sessionTestCase {
	st.expect = append(st.expect, func(t *testing.T, s *Session) {
		var out strings.Builder
		s.Dump(&out)
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return st
}

func (st sessionTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	const defaultTimeout = time.Second
	timeout := st.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s := st.buildSession(t)
	st.check(t, st.runSession(ctx, s), s)

	if t.Failed() {
		// run again with trace logging to show how the session got there
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s := st.buildSession(t, WithTrace(t.Logf))
		t.Logf("re-run error: %v", st.runSession(ctx, s))
		dumpToTest(t, s)
	}
}

func (st sessionTestCase) check(t *testing.T, err error, s *Session) {
	if st.wantErr != nil {
		assert.True(t, errors.Is(err, st.wantErr), "expected error: %v\ngot: %+v", st.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected session error")
	}

	if !t.Failed() {
		for _, expect := range st.expect {
			expect(t, s)
		}
	}
}

func (st sessionTestCase) runSession(ctx context.Context, s *Session) error {
	if st.prog != nil {
		if err := s.Run(ctx, st.prog); err != nil {
			return err
		}
	}
	for _, src := range st.src {
		if err := s.Eval(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

func (st sessionTestCase) buildSession(t *testing.T, opts ...Option) *Session {
	files := make(mapFiles, len(st.files))
	for k, v := range st.files {
		files[k] = v
	}
	return New(
		WithFiles(files),
		WithDiagnostics(&logio.Writer{Logf: t.Logf, Prefix: "diag: "}),
		Options(st.opts...),
		Options(opts...),
	)
}

func dumpToTest(t *testing.T, s *Session) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	s.Dump(&lw)
}

//// utilities

// mapFiles is an in memory FileSystem.
type mapFiles map[string]string

func (files mapFiles) ReadText(path string) (string, error) {
	if text, exists := files[path]; exists {
		return text, nil
	}
	return "", &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (files mapFiles) WriteText(path, text string) error {
	files[path] = text
	return nil
}

type brokenWriter struct{ err error }

func (bw brokenWriter) Write(p []byte) (int, error) { return 0, bw.err }

var _ io.Writer = brokenWriter{}

func valueStrings(values []Value) []string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = v.String()
	}
	return strs
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func reprString(v interface{}) string {
	return repr.String(v, repr.Indent("  "))
}
