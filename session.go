package main

import (
	"context"
	"strconv"
)

// Session is one evaluation of the language: it owns the operand stack, the
// symbol table, and the current line. Sessions share nothing, so separate
// sessions may run concurrently; a single session must not.
type Session struct {
	core

	ctx     context.Context
	stack   Stack
	symbols Symbols
	files   FileSystem

	depth    int
	maxDepth int
}

const defaultRecursionLimit = 10000

// run evaluates a list value against the session.
func (s *Session) run(list Value) {
	s.exec(s.items(list))
}

// exec walks prog left to right. Control operations re-enter exec, so its
// depth is bounded by the recursion limit rather than by the Go stack.
func (s *Session) exec(prog List) {
	if s.depth >= s.maxDepth {
		s.halt(newError(RecursionLimitExceeded, Value{}, "depth %v", s.depth))
	}
	s.depth++
	for _, item := range prog {
		s.haltif(s.ctx.Err())
		s.step(item)
	}
	s.depth--
}

// step evaluates one element of a list: anything but text is pushed as is;
// a text is pushed unresolved if it is shaped like a symbol, pushed as a
// number if it is shaped like a number, and otherwise must name an operation.
func (s *Session) step(item Value) {
	text, isText := item.Str()
	if !isText {
		s.push(item)
		return
	}

	if text != "" {
		if isSymbolStart(text[0]) {
			s.push(item)
			return
		}
		if isNumberStart(text) {
			s.push(Number(parseNumberPrefix(text)))
			return
		}
	}

	code, defined := opCodes[text]
	if !defined {
		s.halt(newError(UnknownOperation, item, ""))
	}
	s.tracef("op %v", code)
	opTable[code](s)
}

func isNumberStart(text string) bool {
	if text[0] == '-' {
		return len(text) > 1 && isDigit(text[1])
	}
	return isDigit(text[0])
}

// parseNumberPrefix parses the longest leading decimal number of text,
// including any exponent, so that "1.2.3" reads as 1.2 and "1e3x" as 1000.
func parseNumberPrefix(text string) float64 {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}
	i = skipDigits(text, i)
	if i < len(text) && text[i] == '.' {
		i = skipDigits(text, i+1)
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if k := skipDigits(text, j); k > j {
			i = k
		}
	}
	f, _ := strconv.ParseFloat(text[:i], 64)
	return f
}

func skipDigits(text string, i int) int {
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	return i
}

func (s *Session) push(v Value) {
	s.tracef("push %v", v)
	s.stack.Push(v)
}

func (s *Session) pop() Value {
	v, err := s.stack.Pop()
	s.haltif(err)
	s.debugf("pop %v", v)
	return v
}

func (s *Session) npop() float64 {
	n, err := s.stack.NumberPop()
	s.haltif(err)
	s.debugf("pop %v", n)
	return n
}

func (s *Session) tpop() string {
	text, err := s.stack.TextPop()
	s.haltif(err)
	s.debugf("pop %q", text)
	return text
}

func (s *Session) lpop() Value {
	list, err := s.stack.ListPop()
	s.haltif(err)
	s.debugf("pop %v", list)
	return list
}

func (s *Session) items(list Value) List {
	items, _ := list.Items()
	return items
}

func (s *Session) newParser() *Parser {
	p := NewParser()
	p.logging = s.logging
	return p
}

func (s *Session) readText(path string) string {
	text, err := s.files.ReadText(path)
	if err != nil {
		s.halt(&Error{Kind: FileFailure, Value: Text(path), Message: "read", Err: err})
	}
	return text
}

func (s *Session) writeText(path, text string) {
	if err := s.files.WriteText(path, text); err != nil {
		s.halt(&Error{Kind: FileFailure, Value: Text(path), Message: "write", Err: err})
	}
}
