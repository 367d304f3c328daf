// Package logger implements the github.com/go-logr/logr interfaces on
// top of zerolog (github.com/rs/zerolog).
package logger

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
)

const (
	debugVerbosity = 2
	traceVerbosity = 8
	timeFormat     = "2006-01-02 15:04:05.000"
)

// Options that can be passed to NewWithOptions.
type Options struct {
	// Name is an optional name of the logger.
	Name string
	// Logger is an instance of zerolog, if nil a default console
	// logger is used.
	Logger *zerolog.Logger
}

// New returns a logr.Logger writing to stderr at the given level.
func New(level string) logr.Logger {
	zerolog.TimeFieldFormat = timeFormat
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeFormat}
	l := zerolog.New(output).Level(parseLevel(level)).With().Timestamp().Logger()
	return NewWithOptions(Options{Logger: &l})
}

// NewWithOptions returns a logr.Logger which is implemented by zerolog.
func NewWithOptions(opts Options) logr.Logger {
	if opts.Logger == nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		opts.Logger = &l
	}
	return logger{
		l:         opts.Logger,
		verbosity: int(opts.Logger.GetLevel()),
		prefix:    opts.Name,
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type logger struct {
	l         *zerolog.Logger
	verbosity int
	prefix    string
	values    []interface{}
}

func (l logger) clone() logger {
	out := l
	out.values = append([]interface{}(nil), l.values...)
	return out
}

func (l logger) level() zerolog.Level {
	if l.verbosity < debugVerbosity {
		return zerolog.InfoLevel
	}
	if l.verbosity < traceVerbosity {
		return zerolog.DebugLevel
	}
	return zerolog.TraceLevel
}

func (l logger) Enabled() bool {
	return l.level() >= zerolog.GlobalLevel()
}

func (l logger) Info(msg string, keysAndVals ...interface{}) {
	if !l.Enabled() {
		return
	}
	e := l.l.WithLevel(l.level())
	if l.prefix != "" {
		e.Str("name", l.prefix)
	}
	add(e, l.values)
	add(e, keysAndVals)
	e.Msg(msg)
}

func (l logger) Error(err error, msg string, keysAndVals ...interface{}) {
	e := l.l.Error().Err(err)
	if l.prefix != "" {
		e.Str("name", l.prefix)
	}
	add(e, l.values)
	add(e, keysAndVals)
	e.Msg(msg)
}

func (l logger) V(verbosity int) logr.Logger {
	out := l.clone()
	out.verbosity = verbosity
	return out
}

// WithName returns a new logr.Logger with the specified name appended,
// name elements are separated by '/'.
func (l logger) WithName(name string) logr.Logger {
	out := l.clone()
	if len(out.prefix) > 0 {
		out.prefix += "/"
	}
	out.prefix += name
	return out
}

func (l logger) WithValues(kvList ...interface{}) logr.Logger {
	out := l.clone()
	out.values = append(out.values, kvList...)
	return out
}

func add(e *zerolog.Event, kvList []interface{}) {
	for i := 0; i < len(kvList)-1; i += 2 {
		key, ok := kvList[i].(string)
		if !ok {
			continue
		}
		e.Interface(key, kvList[i+1])
	}
}
