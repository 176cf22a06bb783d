package main

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the Value union.
type Kind uint8

// The zero Kind marks an absent value, e.g. an Error without an offending value.
const (
	NumberKind Kind = iota + 1
	TextKind
	ListKind
)

var kindNames = [...]string{
	"none",
	"number",
	"text",
	"list",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// List is an ordered sequence of values, used both as data and as code.
type List []Value

// Value is one datum in the language: a Number, a Text, or a List.
//
// Whether a Text is a symbol, a string literal, or an instruction mnemonic is
// not stored; it is decided by where the evaluator encounters it.
type Value struct {
	kind Kind
	num  float64
	text string
	list *List
}

// Number returns a number value.
func Number(f float64) Value { return Value{kind: NumberKind, num: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: TextKind, text: s} }

// ListOf returns a list value holding the given items.
// Each call creates a distinct list identity, see Identical.
func ListOf(items ...Value) Value {
	l := List(items)
	return Value{kind: ListKind, list: &l}
}

// Bool returns 1 for true and 0 for false; the language has no boolean type.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

// Kind returns the value's discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsZero is true only for the absent value.
func (v Value) IsZero() bool { return v.kind == 0 }

// Num returns the number held by v, and whether v is a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == NumberKind }

// Str returns the text held by v, and whether v is a text.
func (v Value) Str() (string, bool) { return v.text, v.kind == TextKind }

// Items returns the elements held by v, and whether v is a list.
func (v Value) Items() (List, bool) {
	if v.kind != ListKind {
		return nil, false
	}
	if v.list == nil {
		return List{}, true
	}
	return *v.list, true
}

// Truthy reports whether v is a nonzero number.
func (v Value) Truthy() bool { return v.kind == NumberKind && v.num != 0 }

// Equal reports deep structural equality: same kind, and for lists the same
// length with pairwise Equal elements.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NumberKind:
		return a.num == b.num
	case TextKind:
		return a.text == b.text
	case ListKind:
		as, _ := a.Items()
		bs, _ := b.Items()
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// Identical is the shallow comparison behind the != operator: numbers and
// texts compare by value, but lists only match when they are the same list
// (e.g. both copies of a .dup), never by content.
func Identical(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == ListKind {
		return a.list == b.list
	}
	return Equal(a, b)
}

var (
	errBacktick  = errors.New("text contains a backtick")
	errNonFinite = errors.New("number is not finite")
)

// Render writes v in the source grammar, so that parsing the result yields a
// value Equal to v. Texts holding a backtick and non-finite numbers have no
// source form; the first one found is returned along with its error.
func Render(v Value) (string, Value, error) {
	var sb strings.Builder
	bad, err := render(&sb, v)
	return sb.String(), bad, err
}

func render(sb *strings.Builder, v Value) (Value, error) {
	switch v.kind {
	case NumberKind:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return v, errNonFinite
		}
		sb.WriteString(formatNumber(v.num))
	case TextKind:
		if strings.IndexByte(v.text, '`') >= 0 {
			return v, errBacktick
		}
		sb.WriteByte('`')
		sb.WriteString(v.text)
		sb.WriteByte('`')
	case ListKind:
		items, _ := v.Items()
		sb.WriteByte('(')
		for i, item := range items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if bad, err := render(sb, item); err != nil {
				return bad, err
			}
		}
		sb.WriteByte(')')
	}
	return Value{}, nil
}

// String formats v for people: like Render, but never fails.
func (v Value) String() string {
	var sb strings.Builder
	v.format(&sb)
	return sb.String()
}

func (v Value) format(sb *strings.Builder) {
	switch v.kind {
	case NumberKind:
		sb.WriteString(formatNumber(v.num))
	case TextKind:
		sb.WriteByte('`')
		sb.WriteString(v.text)
		sb.WriteByte('`')
	case ListKind:
		items, _ := v.Items()
		sb.WriteByte('(')
		for i, item := range items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			item.format(sb)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString("<none>")
	}
}

// Display formats v the way .print shows it: texts raw, everything else as String.
func (v Value) Display() string {
	if s, ok := v.Str(); ok {
		return s
	}
	return v.String()
}

func formatNumber(f float64) string {
	if f == 0 {
		return "0" // also for -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
