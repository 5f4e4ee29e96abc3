// Package logging wraps a zerolog logger behind small key/value helpers.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// InitLogger configures the global logger to write JSON lines to stdout and,
// when file is set, to a rotating log file.
func InitLogger(file string, maxSizeMB, maxBackups, maxAgeDays int, compress bool, level string) {
	writers := []io.Writer{os.Stdout}
	if file != "" {
		if err := ensureLogDir(file); err != nil {
			// Fall back to stdout only; the error is reported once the logger exists.
			defer Warn("Log directory unavailable, logging to stdout only", "file", file, "error", err)
		} else {
			writers = append(writers, &lumberjack.Logger{
				Filename:   file,
				MaxSize:    maxSizeMB,
				MaxBackups: maxBackups,
				MaxAge:     maxAgeDays,
				Compress:   compress,
			})
		}
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	mu.Lock()
	logger = l
	mu.Unlock()
	SetLogLevel(level)
}

func ensureLogDir(file string) error {
	dir := filepath.Dir(file)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// SetLogLevel changes the minimum level. Unknown levels fall back to info.
func SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	mu.Lock()
	logger = logger.Level(lvl)
	mu.Unlock()
}

// SetLoggerForTest replaces the global logger.
func SetLoggerForTest(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Debug logs msg with alternating key/value pairs.
func Debug(msg string, kv ...any) { current().Debug().Fields(kv).Msg(msg) }

// Info logs msg with alternating key/value pairs.
func Info(msg string, kv ...any) { current().Info().Fields(kv).Msg(msg) }

// Warn logs msg with alternating key/value pairs.
func Warn(msg string, kv ...any) { current().Warn().Fields(kv).Msg(msg) }

// Error logs msg with alternating key/value pairs.
func Error(msg string, kv ...any) { current().Error().Fields(kv).Msg(msg) }
