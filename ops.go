package main

import (
	"math"
	"strconv"
)

//// Evaluation

// Symbol   Function
//    $     pop a value: a number pushes itself, a list runs, a text pushes
//          the value bound to it
func (s *Session) eval() {
	v := s.pop()
	s.debugf("%v $", v)
	switch v.kind {
	case NumberKind:
		s.push(v)
	case ListKind:
		s.run(v)
	case TextKind:
		val, err := s.symbols.Lookup(v.text)
		s.haltif(err)
		s.push(val)
	}
}

// Symbol   Function
//    $$    evaluate twice
func (s *Session) eval2() { s.eval(); s.eval() }

// Symbol   Function
//    <-    pop a name, pop a value, bind the name to the value
func (s *Session) assign() {
	name := s.tpop()
	v := s.pop()
	s.symbols.Bind(name, v)
	s.debugf("%v %v <-", v, name)
}

// Symbol   Function
//    ++    increment the number bound to a name
//    --    decrement the number bound to a name
func (s *Session) incr() { s.bump(1) }
func (s *Session) decr() { s.bump(-1) }

func (s *Session) bump(by float64) {
	name := s.tpop()
	v, err := s.symbols.Lookup(name)
	s.haltif(err)
	n, ok := v.Num()
	if !ok {
		s.halt(mismatch(NumberKind, v))
	}
	s.symbols.Bind(name, Number(n+by))
	s.debugf("%v <- %v", name, n+by)
}

//// Arithmetic
//
// Binary operations take the top of stack as their right operand, so that
// "5 3 -" leaves 2.

func (s *Session) add() { b, a := s.npop(), s.npop(); s.push(Number(a + b)) }
func (s *Session) sub() { b, a := s.npop(), s.npop(); s.push(Number(a - b)) }
func (s *Session) mul() { b, a := s.npop(), s.npop(); s.push(Number(a * b)) }
func (s *Session) div() { b, a := s.npop(), s.npop(); s.push(Number(a / b)) }
func (s *Session) mod() { b, a := s.npop(), s.npop(); s.push(Number(math.Mod(a, b))) }

func (s *Session) intDiv() { b, a := s.npop(), s.npop(); s.push(Number(math.Floor(a / b))) }

//// Comparison and logic
//
// There is no boolean type: true is pushed as 1, false as 0, and any
// nonzero number is true.

func (s *Session) gt() { b, a := s.npop(), s.npop(); s.stack.BoolPush(a > b) }
func (s *Session) lt() { b, a := s.npop(), s.npop(); s.stack.BoolPush(a < b) }
func (s *Session) ge() { b, a := s.npop(), s.npop(); s.stack.BoolPush(a >= b) }
func (s *Session) le() { b, a := s.npop(), s.npop(); s.stack.BoolPush(a <= b) }

// == compares structurally, but != only compares list identity; see Identical.
func (s *Session) eq() { b, a := s.pop(), s.pop(); s.stack.BoolPush(Equal(a, b)) }
func (s *Session) ne() { b, a := s.pop(), s.pop(); s.stack.BoolPush(!Identical(a, b)) }

func (s *Session) and() { b, a := s.npop(), s.npop(); s.stack.BoolPush(a != 0 && b != 0) }
func (s *Session) or()  { b, a := s.npop(), s.npop(); s.stack.BoolPush(a != 0 || b != 0) }
func (s *Session) not() { a := s.npop(); s.stack.BoolPush(a == 0) }

// Symbol   Function
//    ?:    pop a condition, a then value, and an else value; push one
func (s *Session) ternary() {
	cond := s.npop()
	then := s.pop()
	otherwise := s.pop()
	if cond != 0 {
		s.push(then)
	} else {
		s.push(otherwise)
	}
}

// Symbol   Function
//    !!    pop a number, die unless it is nonzero
func (s *Session) assert() {
	if s.npop() == 0 {
		s.halt(newError(AssertionFailed, Value{}, ""))
	}
	s.tracef("assertion passed")
}

//// Stack shuffling

func (s *Session) dup() {
	v, err := s.stack.Peek()
	s.haltif(err)
	s.push(v)
}

func (s *Session) drop() { s.pop() }

func (s *Session) swap() {
	b, a := s.pop(), s.pop()
	s.push(b)
	s.push(a)
}

//// Control
//
// Control operations take deferred lists off the stack and run them against
// the same stack and symbols.

// Name      Function
// .if       pop a condition and a body; run the body if the condition holds
func (s *Session) ifOp() {
	cond := s.npop()
	body := s.lpop()
	if cond != 0 {
		s.run(body)
	}
}

// Name      Function
// .ifelse   pop a condition, a then body, and an else body; run one of them
func (s *Session) ifElse() {
	cond := s.npop()
	then := s.lpop()
	otherwise := s.lpop()
	if cond != 0 {
		s.run(then)
	} else {
		s.run(otherwise)
	}
}

// Name      Function
// .each     pop a body and a list; push each element and run the body
func (s *Session) each() {
	body := s.lpop()
	for _, item := range s.items(s.lpop()) {
		s.push(item)
		s.run(body)
	}
}

// Name      Function
// .while    pop a body; run it until it leaves a zero on top of the stack
func (s *Session) while() {
	body := s.lpop()
	for {
		s.haltif(s.ctx.Err())
		s.run(body)
		if s.npop() == 0 {
			return
		}
	}
}

//// Lists

func (s *Session) car() {
	list := s.items(s.lpop())
	if len(list) == 0 {
		s.halt(newError(LookupMiss, ListOf(), "empty list has no first element"))
	}
	s.push(list[0])
}

func (s *Session) cdr() {
	list := s.items(s.lpop())
	if len(list) == 0 {
		s.push(ListOf())
		return
	}
	s.push(ListOf(list[1:]...))
}

func (s *Session) head() {
	n := s.npop()
	list := s.items(s.lpop())
	s.push(ListOf(list[:clampCount(n, len(list))]...))
}

func (s *Session) tail() {
	n := s.npop()
	list := s.items(s.lpop())
	s.push(ListOf(list[len(list)-clampCount(n, len(list)):]...))
}

func (s *Session) get() {
	n := s.npop()
	list := s.items(s.lpop())
	s.push(s.index(list, n))
}

// Name      Function
// .nlist    pop a count n, then pop n values into a list, keeping their order
func (s *Session) nlist() {
	n := s.npop()
	count := 0
	if n > 0 {
		if n > float64(s.stack.Len()) {
			s.halt(newError(StackUnderflow, Number(n), "list longer than the stack"))
		}
		count = int(math.Ceil(n))
	}
	list := make(List, count)
	for i := count - 1; i >= 0; i-- {
		list[i] = s.pop()
	}
	s.push(ListOf(list...))
}

// Symbol   Function
//    @     pop a key and a list: a number key selects by position, a text
//          key selects the value of the first (key value) pair
func (s *Session) lookup() {
	key := s.pop()
	list := s.items(s.lpop())
	switch key.kind {
	case NumberKind:
		s.push(s.index(list, key.num))
	case TextKind:
		for _, item := range list {
			if pair, ok := item.Items(); ok && len(pair) >= 2 {
				if k, ok := pair[0].Str(); ok && k == key.text {
					s.push(pair[1])
					return
				}
			}
		}
		s.halt(newError(LookupMiss, key, "no such key"))
	default:
		s.halt(newError(TypeMismatch, key, "expected number or text key, have %v", key.kind))
	}
}

func (s *Session) index(list List, n float64) Value {
	i := int(n)
	if float64(i) != n || i < 0 || i >= len(list) {
		s.halt(newError(LookupMiss, Number(n), "no index in list of %v", len(list)))
	}
	return list[i]
}

func clampCount(n float64, max int) int {
	switch {
	case n <= 0 || math.IsNaN(n):
		return 0
	case n >= float64(max):
		return max
	}
	return int(n)
}

//// Higher order

// Name      Function
// .reduce   pop a body and a list; push each element and run the body,
//           folding through whatever the body leaves on the stack
func (s *Session) reduce() {
	body := s.lpop()
	list := s.lpop()
	s.debugf("reduce %v %v", list, body)
	for _, item := range s.items(list) {
		s.push(item)
		s.run(body)
	}
}

// Name      Function
// .map      pop a body and a list; push each element, run the body, and
//           collect the value it leaves into a new list
func (s *Session) mapOp() {
	body := s.lpop()
	list := s.items(s.lpop())
	s.debugf("map %v %v", list, body)
	results := make(List, 0, len(list))
	for _, item := range list {
		s.push(item)
		s.run(body)
		results = append(results, s.pop())
	}
	s.push(ListOf(results...))
}

func (s *Session) spread() {
	for _, item := range s.items(s.lpop()) {
		s.push(item)
	}
}

//// Files

// Name      Function
// .import   pop a path; parse that file and push its token tree
func (s *Session) importFile() {
	path := s.tpop()
	src := s.readText(path)
	prog, err := s.newParser().Parse(src)
	if perr, ok := err.(*Error); ok {
		s.halt(&Error{
			Kind:    perr.Kind,
			Value:   Text(path),
			Message: path + ":" + strconv.Itoa(perr.Line) + ": " + perr.Message,
		})
	}
	s.infof("imported %v", path)
	s.push(ListOf(prog...))
}

// Name      Function
// .export   pop a path and a list; write the list in source form
func (s *Session) exportFile() {
	path := s.tpop()
	list := s.lpop()
	text, bad, err := Render(list)
	if err != nil {
		s.halt(&Error{Kind: Unserializable, Value: bad, Err: err})
	}
	s.writeText(path, text)
	s.infof("exported %v", path)
}

func (s *Session) readFile() {
	path := s.tpop()
	s.push(Text(s.readText(path)))
}

func (s *Session) writeFile() {
	path := s.tpop()
	text := s.tpop()
	s.writeText(path, text)
}

//// Diagnostics

func (s *Session) printOp() { s.print(s.pop().Display()) }

func (s *Session) peek() {
	v, err := s.stack.Peek()
	s.haltif(err)
	s.print(v.Display())
}

func (s *Session) exit() { s.halt(ErrExit) }

func (s *Session) die() { s.halt(newError(Died, Value{}, "")) }

// Symbol   Function
//    @@    pop a line number and make it current; the parser emits one of
//          these after every newline
func (s *Session) setLine() {
	s.line = int(s.npop())
	s.tracef("line")
}

//// Conversion

func (s *Session) str()     { s.push(Text(formatNumber(s.npop()))) }
func (s *Session) integer() { s.push(Number(math.Floor(s.npop()))) }

type op uint8

const (
	opEval    op = iota // $        evaluate
	opEval2             // $$       evaluate twice
	opAssign            // <-       bind a symbol
	opAdd               // +
	opSub               // -
	opMul               // *
	opDiv               // /
	opIntDiv            // //       floored division
	opMod               // %
	opIncr              // ++       increment a symbol
	opDecr              // --       decrement a symbol
	opGt                // >
	opLt                // <
	opGe                // >=
	opLe                // <=
	opEq                // ==       deep equality
	opNe                // !=       shallow inequality
	opAnd               // &&
	opOr                // ||
	opNot               // !
	opTernary           // ?:       select a value
	opAssert            // !!       die unless true
	opLookup            // @        index or key lookup
	opSetLine           // @@       set the current line
	opDot               // .        duplicate
	opDup               // .dup     duplicate
	opPop               // .pop     drop
	opSwap              // .swap
	opIf                // .if
	opIfElse            // .ifelse
	opEach              // .each
	opWhile             // .while
	opCar               // .car     first element
	opCdr               // .cdr     all but the first element
	opHead              // .head    first n elements
	opTail              // .tail    last n elements
	opGet               // .get     element n
	opNList             // .nlist   list from the top n values
	opReduce            // .reduce
	opMap               // .map
	opSpread            // .spread  push every element
	opImport            // .import  parse a file into a list
	opExport            // .export  write a list as source
	opRead              // .read    read a file as text
	opWrite             // .write   write text to a file
	opPrint             // .print
	opPeek              // .peek    print without popping
	opExit              // .exit
	opDie               // .die
	opStr               // .str     number to text
	opInt               // .int     floor

	opMax
)

var opTable [opMax]func(s *Session)
var opNames [opMax]string
var opCodes map[string]op

func init() {
	opTable = [...]func(s *Session){
		(*Session).eval,
		(*Session).eval2,
		(*Session).assign,
		(*Session).add,
		(*Session).sub,
		(*Session).mul,
		(*Session).div,
		(*Session).intDiv,
		(*Session).mod,
		(*Session).incr,
		(*Session).decr,
		(*Session).gt,
		(*Session).lt,
		(*Session).ge,
		(*Session).le,
		(*Session).eq,
		(*Session).ne,
		(*Session).and,
		(*Session).or,
		(*Session).not,
		(*Session).ternary,
		(*Session).assert,
		(*Session).lookup,
		(*Session).setLine,
		(*Session).dup,
		(*Session).dup,
		(*Session).drop,
		(*Session).swap,
		(*Session).ifOp,
		(*Session).ifElse,
		(*Session).each,
		(*Session).while,
		(*Session).car,
		(*Session).cdr,
		(*Session).head,
		(*Session).tail,
		(*Session).get,
		(*Session).nlist,
		(*Session).reduce,
		(*Session).mapOp,
		(*Session).spread,
		(*Session).importFile,
		(*Session).exportFile,
		(*Session).readFile,
		(*Session).writeFile,
		(*Session).printOp,
		(*Session).peek,
		(*Session).exit,
		(*Session).die,
		(*Session).str,
		(*Session).integer,
	}

	opNames = [...]string{
		"$",
		"$$",
		"<-",
		"+",
		"-",
		"*",
		"/",
		"//",
		"%",
		"++",
		"--",
		">",
		"<",
		">=",
		"<=",
		"==",
		"!=",
		"&&",
		"||",
		"!",
		"?:",
		"!!",
		"@",
		"@@",
		".",
		".dup",
		".pop",
		".swap",
		".if",
		".ifelse",
		".each",
		".while",
		".car",
		".cdr",
		".head",
		".tail",
		".get",
		".nlist",
		".reduce",
		".map",
		".spread",
		".import",
		".export",
		".read",
		".write",
		".print",
		".peek",
		".exit",
		".die",
		".str",
		".int",
	}

	opCodes = make(map[string]op, opMax)
	for code, name := range opNames {
		opCodes[name] = op(code)
	}
}

func (code op) String() string {
	if code < opMax {
		return opNames[code]
	}
	return "op(" + strconv.Itoa(int(code)) + ")"
}
