package main

import "strconv"

// Parser turns source text into a token tree in a single left to right
// pass. Each newline advances the line counter and injects a "<line> @@"
// pair, so that the evaluator knows which source line it is executing.
//
// A Parser keeps its line counter across calls to Parse; use a new Parser
// for each separate source file.
type Parser struct {
	logging
	line int

	// unclosed counts parentheses left open by the last Parse
	unclosed int

	// frames holds one item list per open parenthesis, plus the top level
	frames []List
}

// NewParser returns a parser starting at line 1.
func NewParser() *Parser { return &Parser{line: 1} }

// Line returns the current line number.
func (p *Parser) Line() int { return p.line }

// Depth returns the number of currently open parentheses.
func (p *Parser) Depth() int {
	if len(p.frames) == 0 {
		return 0
	}
	return len(p.frames) - 1
}

// Parse tokenizes src into one top-level list.
//
// An unmatched ")" fails with UnbalancedParenthesis at its line, as does
// reaching the end of src with any parenthesis still open.
func (p *Parser) Parse(src string) (List, error) {
	if p.line == 0 {
		p.line = 1
	}
	p.frames = append(p.frames[:0], List{})
	p.unclosed = 0

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case c == '\n':
			i = p.parseNewline(i)
		case c == '`':
			i = p.parseString(src, i)
		case c == '#':
			i = p.parseComment(src, i)
		case c == '(':
			i = p.startList(i)
		case c == ')':
			var err error
			if i, err = p.endList(i); err != nil {
				return nil, err
			}
		case c == '.':
			i = p.parseDotOperator(src, i)
		case isDigit(c), c == '-' && i+1 < len(src) && isDigit(src[i+1]):
			i = p.parseNumber(src, i)
		case isSymbolStart(c):
			i = p.parseSymbol(src, i)
		default:
			i = p.parseOperator(src, i)
		}
	}

	if depth := p.Depth(); depth > 0 {
		p.unclosed = depth
		p.frames = p.frames[:0]
		return nil, &Error{
			Kind:    UnbalancedParenthesis,
			Line:    p.line,
			Message: strconv.Itoa(depth) + " unclosed at end of input",
		}
	}
	prog := p.frames[0]
	p.frames = p.frames[:0]
	return prog, nil
}

// Unclosed reports whether src would be well formed if only it went on to
// close its open parentheses; e.g. a partial entry at an interactive prompt.
func (p *Parser) Unclosed(src string) bool {
	_, err := p.Parse(src)
	return err != nil && p.unclosed > 0
}

func (p *Parser) emit(v Value) {
	i := len(p.frames) - 1
	p.frames[i] = append(p.frames[i], v)
}

func (p *Parser) parseNewline(i int) int {
	p.line++
	p.emit(Number(float64(p.line)))
	p.emit(Text(opNames[opSetLine]))
	return i + 1
}

func (p *Parser) startList(i int) int {
	p.frames = append(p.frames, List{})
	p.logf(debugLevel, p.line, "( - depth %v", p.Depth())
	return i + 1
}

func (p *Parser) endList(i int) (int, error) {
	top := len(p.frames) - 1
	if top == 0 {
		p.frames = p.frames[:0]
		return i, &Error{Kind: UnbalancedParenthesis, Line: p.line, Message: "unexpected )"}
	}
	items := p.frames[top]
	p.frames = p.frames[:top]
	p.emit(ListOf(items...))
	p.logf(debugLevel, p.line, ") - depth %v", p.Depth())
	return i + 1, nil
}

func (p *Parser) parseString(src string, i int) int {
	start := i + 1
	end := start
	for end < len(src) && src[end] != '`' {
		end++
	}
	token := src[start:end]
	p.logf(infoLevel, p.line, "string %q", token)
	p.emit(Text(token))
	if end < len(src) {
		end++ // closing backtick
	}
	return end
}

func (p *Parser) parseComment(src string, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

func (p *Parser) parseDotOperator(src string, i int) int {
	end := i + 1
	for end < len(src) && isAlphaNum(src[end]) {
		end++
	}
	token := src[i:end]
	p.logf(traceLevel, p.line, "operator %q", token)
	p.emit(Text(token))
	return end
}

func (p *Parser) parseNumber(src string, i int) int {
	end := i + 1
	for end < len(src) && (isDigit(src[end]) || src[end] == '.') {
		end++
	}
	token := src[i:end]
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		p.logf(traceLevel, p.line, "number %v", token)
		p.emit(Number(f))
	} else {
		p.logf(traceLevel, p.line, "number-like %q", token)
		p.emit(Text(token))
	}
	return end
}

func (p *Parser) parseSymbol(src string, i int) int {
	end := i + 1
	for end < len(src) && isAlphaNum(src[end]) {
		end++
	}
	token := src[i:end]
	p.logf(traceLevel, p.line, "symbol %v", token)
	p.emit(Text(token))
	return end
}

func (p *Parser) parseOperator(src string, i int) int {
	end := i + 1
	for end < len(src) && isOperatorByte(src[end]) {
		end++
	}
	token := src[i:end]
	p.logf(traceLevel, p.line, "operator %q", token)
	p.emit(Text(token))
	return end
}

func isSpace(c byte) bool       { return c == ' ' || c == '\t' || c == '\r' }
func isDigit(c byte) bool       { return '0' <= c && c <= '9' }
func isLetter(c byte) bool      { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isSymbolStart(c byte) bool { return isLetter(c) || c == '_' }
func isAlphaNum(c byte) bool    { return isLetter(c) || isDigit(c) || c == '_' }

func isOperatorByte(c byte) bool {
	switch {
	case isSpace(c), isAlphaNum(c):
		return false
	case c == '\n', c == '`', c == '(', c == ')':
		return false
	}
	return true
}
