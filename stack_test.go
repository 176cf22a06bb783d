package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Stack(t *testing.T) {
	for _, v := range []Value{
		Number(1.5),
		Text("hello"),
		ListOf(Number(1), ListOf(Text("x"))),
	} {
		var st Stack
		st.Push(v)
		got, err := st.Pop()
		require.NoError(t, err)
		assert.True(t, Identical(v, got), "expected pop to return the pushed %v, got %v", v, got)
		assert.Equal(t, 0, st.Len())
	}

	var st Stack
	_, err := st.Pop()
	assert.True(t, errors.Is(err, StackUnderflow))
	_, err = st.Peek()
	assert.True(t, errors.Is(err, StackUnderflow))

	st.Push(Number(1))
	st.BoolPush(false)
	st.Push(Text("t"))
	v, err := st.PeekAt(0)
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())
	_, err = st.PeekAt(3)
	assert.True(t, errors.Is(err, StackUnderflow))
	assert.Equal(t, []string{"1", "0", "`t`"}, valueStrings(st.Values()))
}

func Test_Stack_guarded(t *testing.T) {
	var st Stack
	st.Push(Number(7))
	st.Push(Text("t"))
	st.Push(ListOf())

	_, err := st.NumberPop()
	assert.True(t, errors.Is(err, TypeMismatch))
	assert.Equal(t, 3, st.Len(), "expected a mistyped value to stay on the stack")

	list, err := st.ListPop()
	require.NoError(t, err)
	assert.Equal(t, "()", list.String())

	_, err = st.ListPop()
	assert.True(t, errors.Is(err, TypeMismatch))

	text, err := st.TextPop()
	require.NoError(t, err)
	assert.Equal(t, "t", text)

	n, err := st.NumberPop()
	require.NoError(t, err)
	assert.Equal(t, 7.0, n)

	_, err = st.TextPop()
	assert.True(t, errors.Is(err, StackUnderflow))
}

func Test_Symbols(t *testing.T) {
	var sym Symbols
	_, err := sym.Lookup("x")
	assert.True(t, errors.Is(err, UndefinedSymbol))
	assert.EqualError(t, err, "undefined symbol `x`")
	assert.Equal(t, 0, sym.Len(), "expected a failed lookup not to bind")

	sym.Bind("y", Number(2))
	sym.Bind("x", Number(1))
	sym.Bind("y", Text("two"))
	v, err := sym.Lookup("y")
	require.NoError(t, err)
	assert.Equal(t, "`two`", v.String())
	assert.Equal(t, []string{"x", "y"}, sym.Names())
}
