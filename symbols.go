package main

import "sort"

// Symbols is the flat global symbol table.
type Symbols struct {
	values map[string]Value
}

// Len returns the number of bound symbols.
func (sym *Symbols) Len() int { return len(sym.values) }

// Lookup returns the value bound to name, failing UndefinedSymbol.
func (sym *Symbols) Lookup(name string) (Value, error) {
	if v, defined := sym.values[name]; defined {
		return v, nil
	}
	return Value{}, newError(UndefinedSymbol, Text(name), "")
}

// Bind binds (or rebinds) name to v.
func (sym *Symbols) Bind(name string, v Value) {
	if sym.values == nil {
		sym.values = make(map[string]Value)
	}
	sym.values[name] = v
}

// Names returns all bound names in sorted order.
func (sym *Symbols) Names() []string {
	names := make([]string, 0, len(sym.values))
	for name := range sym.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
