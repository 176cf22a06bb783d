package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/psil/internal/panicerr"
)

// New creates a session with an empty stack and symbol table.
func New(opts ...Option) *Session {
	var s Session
	s.line = 1
	s.maxDepth = defaultRecursionLimit
	defaults.apply(&s)
	Options(opts...).apply(&s)
	s.dump = s.Dump
	return &s
}

// Parse tokenizes src without running it.
func (s *Session) Parse(src string) (List, error) {
	return s.newParser().Parse(src)
}

// Run evaluates prog against the session.
//
// Any fatal error stops evaluation immediately: the session state is dumped
// to the diagnostics writer, and the *Error is returned. State mutated before
// the error is left as is. After .exit, Run returns ErrExit.
func (s *Session) Run(ctx context.Context, prog List) error {
	return s.isolate(ctx, func() List { return prog })
}

// Eval parses src with a fresh line count and runs it; a syntax error is
// fatal just like a runtime one.
func (s *Session) Eval(ctx context.Context, src string) error {
	return s.isolate(ctx, func() List {
		s.line = 1
		prog, err := s.Parse(src)
		s.haltif(err)
		return prog
	})
}

func (s *Session) isolate(ctx context.Context, load func() List) error {
	err := panicerr.Recover("psil", func() error {
		s.ctx = ctx
		s.depth = 0
		s.exec(load())
		s.flush()
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// Stack returns the current stack contents, bottom first.
func (s *Session) Stack() []Value { return append([]Value(nil), s.stack.Values()...) }

// Lookup returns the value bound to name, if any.
func (s *Session) Lookup(name string) (Value, bool) {
	v, err := s.symbols.Lookup(name)
	return v, err == nil
}

// Line returns the current source line.
func (s *Session) Line() int { return s.line }

// Dump writes the session state in readable form: the current line, the
// stack from bottom to top, and every symbol binding in name order.
func (s *Session) Dump(w io.Writer) {
	sessionDumper{s: s, out: w}.dump()
}

func WithOutput(w io.Writer) Option       { return outputOption{w} }
func WithDiagnostics(w io.Writer) Option  { return diagOption{w} }
func WithFiles(fs FileSystem) Option      { return filesOption{fs} }
func WithRecursionLimit(limit int) Option { return recursionLimitOption(limit) }

func WithTrace(logfn func(mess string, args ...interface{})) Option {
	return logOption{traceLevel, logfn}
}
func WithDebug(logfn func(mess string, args ...interface{})) Option {
	return logOption{debugLevel, logfn}
}
func WithInfo(logfn func(mess string, args ...interface{})) Option {
	return logOption{infoLevel, logfn}
}
