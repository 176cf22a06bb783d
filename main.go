package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fortio.org/log"
	"github.com/alecthomas/repr"
	"github.com/peterh/liner"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/psil/internal/fileinput"
	"github.com/jcorbin/psil/internal/flushio"
	"github.com/jcorbin/psil/internal/logio"
	"github.com/jcorbin/psil/internal/panicerr"
)

func main() {
	ctx := context.Background()

	var (
		timeout        time.Duration
		trace          bool
		debug          bool
		verbose        bool
		chatty         bool
		check          bool
		tree           bool
		recursionLimit int
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.BoolVar(&verbose, "verbose", false, "enable info logging")
	flag.BoolVar(&chatty, "v", false, "verbose command output")
	flag.BoolVar(&check, "check", false, "only parse the given files, reporting any syntax errors")
	flag.BoolVar(&tree, "tree", false, "print the parsed token tree instead of running")
	flag.IntVar(&recursionLimit, "recursion-limit", 0, "limit nested list evaluation depth")
	flag.Parse()

	if chatty {
		log.SetLogLevel(log.Verbose)
	}

	var logs logio.Logger
	logs.SetOutput(os.Stderr)

	var opts = []Option{
		WithOutput(stdout()),
		WithDiagnostics(os.Stderr),
	}
	if trace {
		opts = append(opts, WithTrace(logs.Leveledf("trace")))
	}
	if debug {
		opts = append(opts, WithDebug(logs.Leveledf("debug")))
	}
	if verbose {
		opts = append(opts, WithInfo(logs.Leveledf("info")))
	}
	if recursionLimit != 0 {
		opts = append(opts, WithRecursionLimit(recursionLimit))
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	names := flag.Args()
	switch {
	case check:
		os.Exit(checkFiles(ctx, names))
	case tree:
		os.Exit(printTrees(os.Stdout, names))
	}

	sess := New(opts...)
	var err error
	if len(names) == 0 && isTerminal(os.Stdin) {
		err = repl(ctx, sess)
	} else if len(names) == 0 {
		err = runInput(ctx, sess, &fileinput.Input{Queue: []io.Reader{os.Stdin}})
	} else {
		var in *fileinput.Input
		if in, err = fileinput.Open(names...); err == nil {
			err = runInput(ctx, sess, in)
		}
	}

	code := finish(os.Stderr, sess, err, verbose)
	if code == 0 {
		code = logs.ExitCode()
	}
	os.Exit(code)
}

// finish reports how a run ended, returning its exit code. A recovered Go
// panic is logged along with its stack. Verbose runs end by dumping the
// final session state, just as a fatal error would.
func finish(diag io.Writer, sess *Session, err error, verbose bool) int {
	if errors.Is(err, ErrExit) {
		err = nil
	}
	switch {
	case panicerr.IsPanic(err):
		log.Errf("%v", err)
		fmt.Fprintf(diag, "%s", panicerr.PanicStack(err))
		return 1
	case err != nil:
		log.Errf("%v", err)
		return 1
	}
	if verbose {
		log.Infof("done")
		fmt.Fprintf(diag, "DONE\n")
		sess.Dump(diag)
	}
	return 0
}

// runInput runs every queued source in order against one session, so that
// later files see the stack and symbols left by earlier ones.
func runInput(ctx context.Context, sess *Session, in *fileinput.Input) error {
	defer in.Close()
	for {
		src, err := in.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		log.LogVf("running %v", src)
		if err := sess.Eval(ctx, src.Text); err != nil {
			line := sess.Line()
			var perr *Error
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return fmt.Errorf("%v: %w", src.At(line), err)
		}
	}
}

// checkFiles parses every named file concurrently, each with its own
// parser, and reports every syntax error found.
func checkFiles(ctx context.Context, names []string) int {
	errs := make([]error, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := fileinput.Open(name)
			if err != nil {
				return err
			}
			src, err := in.Next()
			if err != nil {
				return err
			}
			_, errs[i] = NewParser().Parse(src.Text)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Errf("check failed: %v", err)
		return 1
	}

	code := 0
	for i, err := range errs {
		if err != nil {
			log.Errf("%v: %v", names[i], err)
			code = 1
		} else {
			log.LogVf("%v: ok", names[i])
		}
	}
	return code
}

// printTrees writes the parsed form of every named file to w.
func printTrees(w io.Writer, names []string) int {
	in, err := fileinput.Open(names...)
	if err != nil {
		log.Errf("%v", err)
		return 1
	}
	defer in.Close()
	for {
		src, err := in.Next()
		if err == io.EOF {
			return 0
		} else if err != nil {
			log.Errf("%v", err)
			return 1
		}
		prog, err := NewParser().Parse(src.Text)
		if err != nil {
			log.Errf("%v: %v", src.Name, err)
			return 1
		}
		fmt.Fprintf(w, "%v:\n%v\n", src.Name, repr.String(prog, repr.Indent("  ")))
	}
}

// stdout returns standard output, flushed line by line when it is a terminal
// so that output from a long running program shows up as it happens.
func stdout() io.Writer {
	if isTerminal(os.Stdout) {
		return flushio.NewLineFlusher(os.Stdout)
	}
	return os.Stdout
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// repl runs an interactive session on the terminal.
func repl(ctx context.Context, sess *Session) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	return readEvalLoop(ctx, sess, ln)
}

// prompter reads lines of interactive input; implemented by *liner.State.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// readEvalLoop reads and runs one entry at a time, continuing an entry while
// it has unclosed parentheses; an aborted prompt discards the entry. A fatal
// error is dumped like anywhere else, but the session carries on with
// whatever state the error left behind.
func readEvalLoop(ctx context.Context, sess *Session, in prompter) error {
	var entry strings.Builder
	for {
		prompt := "psil> "
		if entry.Len() > 0 {
			prompt = "  ... "
		}
		line, err := in.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			entry.Reset()
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		if entry.Len() > 0 {
			entry.WriteByte('\n')
		}
		entry.WriteString(line)
		src := entry.String()
		if strings.TrimSpace(src) == "" {
			entry.Reset()
			continue
		}
		if p := NewParser(); p.Unclosed(src) {
			continue
		}
		entry.Reset()
		in.AppendHistory(src)

		if err := sess.Eval(ctx, src); errors.Is(err, ErrExit) {
			return nil
		} else if err != nil {
			var perr *Error
			if !errors.As(err, &perr) {
				return err
			}
		}
	}
}
