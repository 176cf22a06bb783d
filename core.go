package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/psil/internal/flushio"
)

type logLevel uint8

const (
	traceLevel logLevel = iota
	debugLevel
	infoLevel
	numLogLevels
)

// logging holds one log function per level; a nil function disables that
// level entirely.
type logging struct {
	logfns [numLogLevels]func(mess string, args ...interface{})
}

func (log logging) enabled(level logLevel) bool { return log.logfns[level] != nil }

func (log logging) logf(level logLevel, line int, mess string, args ...interface{}) {
	logfn := log.logfns[level]
	if logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	logfn("%v %v", line, mess)
}

// core is the diagnostics sink of a session: it tracks the current source
// line, gates leveled logging, and implements the fatal halt path.
type core struct {
	logging
	line int

	out  flushio.WriteFlusher
	diag io.Writer

	dump func(w io.Writer)
}

func (c *core) tracef(mess string, args ...interface{}) { c.logf(traceLevel, c.line, mess, args...) }
func (c *core) debugf(mess string, args ...interface{}) { c.logf(debugLevel, c.line, mess, args...) }
func (c *core) infof(mess string, args ...interface{})  { c.logf(infoLevel, c.line, mess, args...) }

func (c *core) print(s string) {
	if _, err := io.WriteString(c.out, s); err != nil {
		c.halt(&Error{Kind: FileFailure, Message: "output", Err: err})
	}
	if _, err := io.WriteString(c.out, "\n"); err != nil {
		c.halt(&Error{Kind: FileFailure, Message: "output", Err: err})
	}
}

func (c *core) flush() {
	if err := c.out.Flush(); err != nil {
		c.halt(&Error{Kind: FileFailure, Message: "output", Err: err})
	}
}

// halt stops the session by panicking with err, which Run recovers. Fatal
// errors are stamped with the current line and the session state is dumped
// to the diagnostics writer first.
func (c *core) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if c.out != nil {
			if ferr := c.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	if perr, ok := err.(*Error); ok {
		if perr.Line == 0 {
			perr.Line = c.line
		}
		func() {
			defer func() { recover() }()
			c.dumpError(perr)
		}()
	} else if err == ErrExit {
		c.infof("exit")
	}

	panic(haltError{err})
}

func (c *core) haltif(err error) {
	if err != nil {
		c.halt(err)
	}
}

func (c *core) dumpError(err *Error) {
	if c.diag == nil {
		return
	}
	fmt.Fprintf(c.diag, "DIE: %v\n", err)
	if c.dump != nil {
		c.dump(c.diag)
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }
