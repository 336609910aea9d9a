//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package log provides the leveled logger shared by every treqa package.
//
// Logs go to stderr: the treqa CLI reserves stdout for scores.
package log

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log level names accepted by SetLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// Logger is the logging interface used throughout trpc-treqa-go.
// A zap SugaredLogger satisfies it.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

// Default is the process-wide logger. Replace it to route logs elsewhere.
var Default Logger = newZapLogger(os.Stderr, 1)

// newZapLogger builds a console logger writing to w.
func newZapLogger(w io.Writer, callerSkip int) *zap.SugaredLogger {
	return zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(w),
			zapLevel,
		),
		zap.AddCaller(),
		zap.AddCallerSkip(callerSkip),
	).Sugar()
}

// SetOutput redirects Default to w, keeping the current level.
func SetOutput(w io.Writer) {
	Default = newZapLogger(w, 1)
}

// SetLevel sets the log level. Unknown names fall back to info.
func SetLevel(level string) {
	switch level {
	case LevelDebug:
		zapLevel.SetLevel(zapcore.DebugLevel)
	case LevelWarn:
		zapLevel.SetLevel(zapcore.WarnLevel)
	case LevelError:
		zapLevel.SetLevel(zapcore.ErrorLevel)
	case LevelFatal:
		zapLevel.SetLevel(zapcore.FatalLevel)
	default:
		zapLevel.SetLevel(zapcore.InfoLevel)
	}
}

// Debug logs at DEBUG level in the manner of fmt.Print.
func Debug(args ...any) { Default.Debug(args...) }

// Debugf logs at DEBUG level in the manner of fmt.Printf.
func Debugf(format string, args ...any) { Default.Debugf(format, args...) }

// Info logs at INFO level in the manner of fmt.Print.
func Info(args ...any) { Default.Info(args...) }

// Infof logs at INFO level in the manner of fmt.Printf.
func Infof(format string, args ...any) { Default.Infof(format, args...) }

// Warn logs at WARN level in the manner of fmt.Print.
func Warn(args ...any) { Default.Warn(args...) }

// Warnf logs at WARN level in the manner of fmt.Printf.
func Warnf(format string, args ...any) { Default.Warnf(format, args...) }

// Error logs at ERROR level in the manner of fmt.Print.
func Error(args ...any) { Default.Error(args...) }

// Errorf logs at ERROR level in the manner of fmt.Printf.
func Errorf(format string, args ...any) { Default.Errorf(format, args...) }

// Fatal logs at FATAL level and exits.
func Fatal(args ...any) { Default.Fatal(args...) }

// Fatalf logs at FATAL level in the manner of fmt.Printf and exits.
func Fatalf(format string, args ...any) { Default.Fatalf(format, args...) }

// DebugfContext logs at DEBUG level. The context is ignored by default;
// replace the variable to extract request scoped fields.
var DebugfContext = func(_ context.Context, format string, args ...any) {
	Default.Debugf(format, args...)
}

// InfofContext logs at INFO level. The context is ignored by default.
var InfofContext = func(_ context.Context, format string, args ...any) {
	Default.Infof(format, args...)
}
