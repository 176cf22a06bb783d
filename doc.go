/* Package main: psil -- a postfix stack language

Psil programs are a flat stream of tokens, read left to right. Every token
either pushes a value onto the stack, or names an operation that takes its
operands off the stack and pushes its results back. There are no statements,
no precedence, and no infix notation: "5 3 -" leaves 2.

Section 1: Values

There are three kinds of value: Numbers (64-bit floats), Texts, and Lists. A
parenthesized group like (1 2 +) is parsed into a List, and is pushed as data
rather than run; the same List may later be run by $ or by any of the control
operations. So Lists are both the only data structure, and the only way to
write a procedure.

A Text is written between backticks like `hello world`, and may span lines;
there are no escapes, so a Text can never contain a backtick. A bare word like
foo is also a Text; when evaluated it is pushed as is, so that it can be used
as a name: "42 answer <-" binds answer, and "answer $" pushes 42 back.

Numbers are written in plain decimal, optionally negative: 3, -1, 0.25. A
token that starts like a number but does not parse as one, like 1.2.3, is kept
as a Text by the parser, and read as its longest numeric prefix when run.

Section 2: Operations

Any other token must name an operation: either one of the symbolic operators
like + <- ?: or a dotted name like .dup .while .map. Binary operations take
their right operand from the top of the stack. Comparisons and logical
operations push 1 for true and 0 for false, and any nonzero Number counts as
true; there is no boolean kind.

Note that == compares values structurally, recursing into Lists, but != does
not: two Lists are only "not unequal" when they are the very same List, as
when one is a .dup of the other. So "(1) (1) ==" and "(1) (1) !=" are both 1.

Control operations pop their body Lists (and conditions) and run them against
the same stack and symbol table:

	(body) cond .if
	(else) (then) cond .ifelse
	(items) (body) .each
	(body) .while

Section 3: Lines and errors

The parser counts newlines, and after each one injects a "<line> @@" pair that
sets the session's current line when run. Any error is fatal: the session
stops, writes a "DIE:" line and a dump of its line, stack, and symbols to its
diagnostics writer, and returns an *Error carrying the kind, line, and any
offending value. Nothing done before the error is undone.

A program that ends with a parenthesis still open fails just like one with an
extra closing parenthesis: neither is run.

Section 4: Files

.import parses a file into a List without running it, and .export writes a
List back out in the same syntax; .read and .write move raw Text. All four go
through the session's FileSystem, which defaults to the host's.

The psil command runs each named file in order within one session, or reads a
program from standard input, or starts an interactive prompt when standard
input is a terminal.
*/
package main
