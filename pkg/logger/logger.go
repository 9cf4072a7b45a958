// Package logger holds the process-wide zerolog logger of the portal.
//
// Call Init once from the entrypoint; packages that cannot receive a logger
// through their constructor use Get or Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else is info.
	Level string
	// Pretty writes coloured console lines instead of JSON. Development only.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service and Version are attached to every entry when set.
	Service string
	Version string
}

var (
	mu     sync.RWMutex
	global *zerolog.Logger
)

// New builds a logger from opts without touching the global one.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(out).Level(parseLevel(opts.Level)).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Version != "" {
		ctx = ctx.Str("version", opts.Version)
	}
	return ctx.Logger()
}

// Init builds the global logger. Later calls return the first logger
// unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := New(opts)
		global = &l
	}
	return *global
}

// Get returns the global logger. It panics before Init.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		panic("logger: Get() called before Init()")
	}
	return global
}

// Component tags the global logger with a component name.
func Component(name string) *zerolog.Logger {
	l := Get().With().Str("component", name).Logger()
	return &l
}

// Reset drops the global logger. Tests only.
func Reset() {
	mu.Lock()
	global = nil
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return zerolog.WarnLevel
	case "trace", "debug", "info", "warn", "error":
		l, _ := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
		return l
	default:
		return zerolog.InfoLevel
	}
}
