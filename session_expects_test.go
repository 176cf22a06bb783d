package main

import "time"

// @generated from session_test.go

//go:generate go run scripts/gen_session_expects.go -- session_test.go session_expects_test.go

func withSessionOptions(opts ...Option) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.withOptions(opts...)
	}
}

func withSessionStack(values ...Value) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.withStack(values...)
	}
}

func withSessionSymbol(name string, v Value) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.withSymbol(name, v)
	}
}

func withSessionFile(path string, text string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.withFile(path, text)
	}
}

func withSessionRecursionLimit(limit int) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.withRecursionLimit(limit)
	}
}

func withSessionSource(src string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.withSource(src)
	}
}

func withSessionProg(items ...Value) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.withProg(items...)
	}
}

func withSessionTimeout(timeout time.Duration) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.withTimeout(timeout)
	}
}

func expectSessionError(err error) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectError(err)
	}
}

func expectSessionStack(values ...string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectStack(values...)
	}
}

func expectSessionSymbol(name string, value string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectSymbol(name, value)
	}
}

func expectSessionUnbound(name string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectUnbound(name)
	}
}

func expectSessionSymbolCount(n int) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectSymbolCount(n)
	}
}

func expectSessionLine(line int) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectLine(line)
	}
}

func expectSessionOutput(output string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectOutput(output)
	}
}

func expectSessionDiagnostics(parts ...string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectDiagnostics(parts...)
	}
}

func expectSessionFile(path string, text string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectFile(path, text)
	}
}

func expectSessionDump(dump string) func(sessionTestCase) sessionTestCase {
	return func(st sessionTestCase) sessionTestCase {
		return st.expectDump(dump)
	}
}
