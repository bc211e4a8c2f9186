package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	slog *slog.Logger
}

// NewLogger создаёт логгер с ротацией файла и дублированием в stderr
func NewLogger(logPath, logLevel string) *Logger {
	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	handler := slog.NewJSONHandler(io.MultiWriter(rotator, os.Stderr), &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	})

	return &Logger{slog: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.slog.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.slog.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.slog.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.slog.Error(msg, fields...)
}
