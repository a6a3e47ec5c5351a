// Package applog wraps github.com/lunny/log for oligosig's pipeline and
// CLI: leveled, optionally colorized progress logging, with a verbose mode
// that dumps structured values (trie metrics, cluster sets) via go-spew.
package applog

import (
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/lunny/log"
)

// Logger is a leveled logger for one pipeline stage or CLI subcommand.
type Logger struct {
	backend *log.Logger
	verbose bool
	prefix  string
}

// New creates a Logger writing to w, prefixed with name (typically a
// pipeline stage name such as "cover" or "smallDiff").
func New(w io.Writer, name string) *Logger {
	backend := log.New(w, "", log.Ldate|log.Ltime)
	backend.SetOutputLevel(log.Linfo)
	return &Logger{backend: backend, prefix: name}
}

// Default returns a Logger writing to stderr.
func Default(name string) *Logger {
	return New(os.Stderr, name)
}

// SetVerbose enables Debug-level output and spew dumps.
func (l *Logger) SetVerbose(v bool) {
	l.verbose = v
	if v {
		l.backend.SetOutputLevel(log.Ldebug)
	} else {
		l.backend.SetOutputLevel(log.Linfo)
	}
}

func (l *Logger) line(format string) string {
	if l.prefix == "" {
		return format
	}
	return "[" + l.prefix + "] " + format
}

// Infof logs a normal-priority progress message.
func (l *Logger) Infof(format string, args ...any) {
	l.backend.Infof(l.line(format), args...)
}

// Warnf logs a recoverable-condition message.
func (l *Logger) Warnf(format string, args ...any) {
	l.backend.Warnf(l.line(format), args...)
}

// Errorf logs a failure that does not abort the run.
func (l *Logger) Errorf(format string, args ...any) {
	l.backend.Errorf(l.line(format), args...)
}

// Fatalf logs and exits the process, matching lunny/log's Fatal semantics.
func (l *Logger) Fatalf(format string, args ...any) {
	l.backend.Fatalf(l.line(format), args...)
}

// Debugf logs a verbose-only message, skipped unless SetVerbose(true).
func (l *Logger) Debugf(format string, args ...any) {
	l.backend.Debugf(l.line(format), args...)
}

// Dump renders v with spew.Sdump at Debug level only, avoiding the cost of
// formatting large trie/cluster structures when not running verbosely.
func (l *Logger) Dump(label string, v any) {
	if !l.verbose {
		return
	}
	l.backend.Debugf(l.line("%s:\n%s"), label, spew.Sdump(v))
}
