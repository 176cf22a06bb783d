// Package panicerr turns panics and goroutine exits into plain errors at an
// API boundary.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Error is a panic, or a runtime.Goexit call, recovered by Recover.
type Error struct {
	Name  string
	Value interface{} // the recovered panic value, nil after an exit
	Stack []byte      // the stack of the panicking goroutine
	Exit  bool
}

// Recover runs f in a new goroutine, recovering any panic or runtime.Goexit
// as an *Error.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		returned := false
		defer close(errch)
		defer func() {
			if e := recover(); e != nil {
				errch <- &Error{Name: name, Value: e, Stack: debug.Stack()}
			} else if !returned {
				errch <- &Error{Name: name, Exit: true}
			}
		}()
		err := f()
		returned = true
		errch <- err
	}()
	return <-errch
}

func (e *Error) Error() string { return fmt.Sprint(e) }

// Format prints the stack after the message under the %+v verb.
func (e *Error) Format(f fmt.State, c rune) {
	name := e.Name
	if name == "" {
		name = "goroutine"
	}
	if e.Exit {
		fmt.Fprintf(f, "%v called runtime.Goexit", name)
		return
	}
	fmt.Fprintf(f, "%v panicked: %v", name, e.Value)
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\npanic stack: %s", e.Stack)
	}
}

// Unwrap returns the panic value if it was an error, so that a panic may
// carry a typed error out through Recover.
func (e *Error) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Exit
}

// IsPanic returns true if err indicates a recovered panic.
func IsPanic(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && !pe.Exit
}

// PanicStack returns the stack trace of a recovered panic, or "" if err is
// not one.
func PanicStack(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}
