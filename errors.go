package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies a fatal error. Kinds are errors themselves, so that
// errors.Is(err, StackUnderflow) matches any *Error of that kind.
type ErrorKind uint8

// Error kinds.
const (
	StackUnderflow ErrorKind = iota + 1
	TypeMismatch
	UndefinedSymbol
	UnbalancedParenthesis
	UnknownOperation
	AssertionFailed
	LookupMiss
	RecursionLimitExceeded
	FileFailure
	Unserializable
	Died

	errorKindMax
)

var errorKindNames = [errorKindMax]string{
	"unknown error",
	"stack underflow",
	"type mismatch",
	"undefined symbol",
	"unbalanced parenthesis",
	"unknown operation",
	"assertion failed",
	"lookup miss",
	"recursion limit exceeded",
	"file failure",
	"unserializable",
	"died",
}

func (kind ErrorKind) Error() string {
	if kind < errorKindMax {
		return errorKindNames[kind]
	}
	return "ErrorKind(" + strconv.Itoa(int(kind)) + ")"
}

// Error is the single error type of the language: every fatal condition is
// one of these, carrying its kind, the source line current when it happened,
// and any offending value.
type Error struct {
	Kind    ErrorKind
	Line    int
	Value   Value
	Message string
	Err     error
}

func (err *Error) Error() string {
	var sb strings.Builder
	if err.Line > 0 {
		fmt.Fprintf(&sb, "line %v: ", err.Line)
	}
	sb.WriteString(err.Kind.Error())
	if err.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(err.Message)
	}
	if !err.Value.IsZero() {
		sb.WriteString(" ")
		sb.WriteString(err.Value.String())
	}
	if err.Err != nil {
		fmt.Fprintf(&sb, ": %v", err.Err)
	}
	return sb.String()
}

// Is matches an ErrorKind target.
func (err *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == err.Kind
}

func (err *Error) Unwrap() error { return err.Err }

func newError(kind ErrorKind, val Value, mess string, args ...interface{}) *Error {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	return &Error{Kind: kind, Value: val, Message: mess}
}

func mismatch(want Kind, have Value) *Error {
	return newError(TypeMismatch, have, "expected %v, have %v", want, have.Kind())
}

// ErrExit is returned by Run after the program executes .exit.
var ErrExit = errors.New("exit")
