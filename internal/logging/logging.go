package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. The terminal belongs to the TUI, so
// logs go to the given file only; an empty path discards them.
// The returned function closes the log file.
func Setup(level, path string) (func() error, error) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() error { return nil }, nil
	}

	file, err := openLogFile(path)
	if err != nil {
		log.Logger = zerolog.New(io.Discard)
		return nil, err
	}

	logger := zerolog.New(file).With().Timestamp().Logger()
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger

	log.Debug().Str("level", level).Str("logFile", path).Msg("Logger initialized")

	return file.Close, nil
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}
