package main

import (
	"io"

	"github.com/jcorbin/psil/internal/flushio"
)

// Option configures a Session.
type Option interface{ apply(s *Session) }

var defaults = Options(
	withOutput(io.Discard),
	withFiles(osFiles{}),
)

// Options combines any number of options into one, applied in order.
func Options(opts ...Option) Option {
	var all options
	for _, opt := range opts {
		if many, ok := opt.(options); ok {
			all = append(all, many...)
		} else if opt != nil {
			all = append(all, opt)
		}
	}
	return all
}

type options []Option

func (opts options) apply(s *Session) {
	for _, opt := range opts {
		opt.apply(s)
	}
}

type outputOption struct{ io.Writer }
type diagOption struct{ io.Writer }
type filesOption struct{ FileSystem }
type recursionLimitOption int

type logOption struct {
	level logLevel
	logfn func(mess string, args ...interface{})
}

func withOutput(w io.Writer) outputOption { return outputOption{w} }
func withFiles(fs FileSystem) filesOption { return filesOption{fs} }

func (o outputOption) apply(s *Session) {
	if s.out != nil {
		s.out.Flush()
	}
	s.out = flushio.NewWriteFlusher(o.Writer)
}

func (o diagOption) apply(s *Session) { s.diag = o.Writer }

func (o filesOption) apply(s *Session) { s.files = o.FileSystem }

func (lim recursionLimitOption) apply(s *Session) {
	if lim > 0 {
		s.maxDepth = int(lim)
	} else {
		s.maxDepth = defaultRecursionLimit
	}
}

func (o logOption) apply(s *Session) { s.logfns[o.level] = o.logfn }
