package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jharding/sprintplan/internal/config"
)

// FileLoggerResult contains the results of setting up file logging.
type FileLoggerResult struct {
	Logger  *slog.Logger
	LogFile io.WriteCloser
}

// Close closes the log file if it was opened.
func (r *FileLoggerResult) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// SetupFileLogger creates a logger that writes JSON records to a rotating
// file instead of stderr. Used for --log-file and for TUI mode, where
// stderr output would corrupt the display. Uses lumberjack for automatic
// rotation based on the provided config.
func SetupFileLogger(path string, level slog.Leveler, rotationCfg config.LogRotationConfig) *FileLoggerResult {
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotationCfg.MaxSizeMB,
		MaxBackups: rotationCfg.MaxBackups,
		MaxAge:     rotationCfg.MaxAgeDays,
		Compress:   rotationCfg.Compress,
	}

	logger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}))

	return &FileLoggerResult{
		Logger:  logger,
		LogFile: writer,
	}
}

// SetupLoggerWithWriter creates a logger that writes to the given writer.
// This is useful for testing where we want to capture the output.
func SetupLoggerWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
