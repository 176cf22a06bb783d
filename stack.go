package main

// Stack is the operand stack: a LIFO of values. Guarded accessors return an
// *Error rather than a missing or mistyped value.
type Stack struct {
	values []Value
}

// Len returns the stack depth.
func (st *Stack) Len() int { return len(st.values) }

// Values returns the stack contents, bottom first.
func (st *Stack) Values() []Value { return st.values }

// Push places v on top.
func (st *Stack) Push(v Value) { st.values = append(st.values, v) }

// BoolPush pushes 1 or 0.
func (st *Stack) BoolPush(b bool) { st.Push(Bool(b)) }

// Peek returns the top value without removing it.
func (st *Stack) Peek() (Value, error) {
	return st.PeekAt(len(st.values) - 1)
}

// PeekAt returns the value at index i counted from the bottom.
func (st *Stack) PeekAt(i int) (Value, error) {
	if i < 0 || i >= len(st.values) {
		return Value{}, newError(StackUnderflow, Value{}, "no value at %v of %v", i, len(st.values))
	}
	return st.values[i], nil
}

// Pop removes and returns the top value.
func (st *Stack) Pop() (Value, error) {
	i := len(st.values) - 1
	if i < 0 {
		return Value{}, newError(StackUnderflow, Value{}, "")
	}
	v := st.values[i]
	st.values[i] = Value{}
	st.values = st.values[:i]
	return v, nil
}

func (st *Stack) popKind(want Kind) (Value, error) {
	v, err := st.Pop()
	if err == nil && v.kind != want {
		st.Push(v) // left in place for the dump
		err = mismatch(want, v)
	}
	return v, err
}

// NumberPop pops a number, failing TypeMismatch on any other kind.
func (st *Stack) NumberPop() (float64, error) {
	v, err := st.popKind(NumberKind)
	return v.num, err
}

// TextPop pops a text, failing TypeMismatch on any other kind.
func (st *Stack) TextPop() (string, error) {
	v, err := st.popKind(TextKind)
	return v.text, err
}

// ListPop pops a list value, failing TypeMismatch on any other kind.
// The list value itself is returned so that its identity is preserved.
func (st *Stack) ListPop() (Value, error) {
	v, err := st.popKind(ListKind)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}
