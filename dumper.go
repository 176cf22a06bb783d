package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/psil/internal/runeio"
)

type sessionDumper struct {
	s   *Session
	out io.Writer
}

func (dump sessionDumper) dump() {
	fmt.Fprintf(dump.out, "# Session Dump\n")
	fmt.Fprintf(dump.out, "  line: %v\n", dump.s.line)
	dump.dumpStack()
	dump.dumpSymbols()
}

func (dump sessionDumper) dumpStack() {
	values := dump.s.stack.Values()
	fmt.Fprintf(dump.out, "# Stack depth:%v\n", len(values))
	width := len(fmt.Sprint(len(values)))
	for i, v := range values {
		fmt.Fprintf(dump.out, "  [%*v] %v\n", width, i, runeio.Visible(v.String()))
	}
}

func (dump sessionDumper) dumpSymbols() {
	names := dump.s.symbols.Names()
	fmt.Fprintf(dump.out, "# Symbols count:%v\n", len(names))
	for _, name := range names {
		v, _ := dump.s.symbols.Lookup(name)
		fmt.Fprintf(dump.out, "  %v = %v\n", runeio.Visible(name), runeio.Visible(v.String()))
	}
}
