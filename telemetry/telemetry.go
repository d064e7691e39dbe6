// Package telemetry provides the structured logger the engine uses to
// narrate the executor's driver-aggregate step, pool task errors, and
// panics recovered by the pool. It
// never gates correctness: every call site that logs also returns (or
// has already returned) the error through the normal Go error path.
package telemetry

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	current = zerolog.New(io.Discard).With().Timestamp().Logger()
)

// Configure installs a new base logger for the process. Library code
// should call this rarely, if ever; it exists mainly for the demo CLI and
// for tests that want to assert on emitted log lines.
func Configure(w io.Writer, level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	current = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ConfigureConsole installs a human-readable console writer, the style
// the demo CLI runs with.
func ConfigureConsole(level zerolog.Level) {
	Configure(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}, level)
}

// Log returns the current base logger. Safe for concurrent use; callers
// should derive a sub-logger with .With() rather than mutate the result.
func Log() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
