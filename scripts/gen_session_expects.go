// gen_session_expects writes a free function for every sessionTestCase
// builder method found in a test file, so that builders can be passed around
// as values, e.g. to sessionTestCase.apply.
//
// Usage: go run scripts/gen_session_expects.go -- session_test.go session_expects_test.go
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		log.Fatalf("usage: gen_session_expects INPUT_test.go OUTPUT_test.go")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := generate(ctx, args[0], args[1]); err != nil {
		log.Fatalln(err)
	}
}

// builderMethod matches the single line signature of a sessionTestCase
// builder, e.g. "func (st sessionTestCase) expectStack(values ...string) sessionTestCase {"
var builderMethod = regexp.MustCompile(`func \(st sessionTestCase\) (expect|with)(.+?)\((.+?)\) sessionTestCase`)

type builder struct {
	base, what, params string
}

func generate(ctx context.Context, inName, outName string) error {
	in, err := os.Open(inName)
	if err != nil {
		return err
	}
	defer in.Close()

	var buf bytes.Buffer
	buf.Grow(4096)
	fmt.Fprintf(&buf, "package main\n\n")
	fmt.Fprintf(&buf, "// @generated from %v\n\n", inName)
	fmt.Fprintf(&buf, "//go:generate go run scripts/gen_session_expects.go -- %v %v\n\n", inName, outName)

	builders := make(chan builder)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(builders)
		return scanBuilders(ctx, in, builders)
	})
	eg.Go(func() error {
		for b := range builders {
			b.writeTo(&buf)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	src, err := imports.Process(outName, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("goimports failed: %w", err)
	}
	return os.WriteFile(outName, src, 0666)
}

func scanBuilders(ctx context.Context, r io.Reader, out chan<- builder) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		match := builderMethod.FindStringSubmatch(sc.Text())
		if len(match) == 0 {
			continue
		}
		select {
		case out <- builder{match[1], match[2], match[3]}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return sc.Err()
}

// writeTo writes a function returning a closure over the builder method.
func (b builder) writeTo(buf *bytes.Buffer) {
	var args []string
	for _, param := range strings.Split(b.params, ",") {
		fields := strings.Fields(param)
		arg := fields[0]
		if len(fields) > 1 && strings.HasPrefix(fields[1], "...") {
			arg += "..."
		}
		args = append(args, arg)
	}
	fmt.Fprintf(buf, "func %vSession%v(%v) func(sessionTestCase) sessionTestCase {\n", b.base, b.what, b.params)
	fmt.Fprintf(buf, "\treturn func(st sessionTestCase) sessionTestCase {\n")
	fmt.Fprintf(buf, "\t\treturn st.%v%v(%v)\n", b.base, b.what, strings.Join(args, ", "))
	fmt.Fprintf(buf, "\t}\n}\n\n")
}
