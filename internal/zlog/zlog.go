// Package zlog provides the package-level structured logger shared by the
// coinbase puzzle subsystem. It mirrors the logger a gnark-style backend
// keeps around its proving/verifying pipeline: one process-wide zerolog
// logger, configurable level, console-friendly by default.
package zlog

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Str("component", "coinbase_puzzle").Logger().
		Level(zerolog.InfoLevel)
)

// Logger returns the shared logger. Safe for concurrent use.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &logger
}

// SetLevel adjusts the minimum level emitted by the shared logger.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level)
}

// SetOutput redirects the shared logger's destination, e.g. to silence it
// in tests or to point it at a file when embedded in a larger service.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Output(w)
}
