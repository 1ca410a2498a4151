// Package logging builds the structured file logger shared by the engines.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON logger writing to a rotating file at path. An empty
// path disables logging and "-" writes to stderr. The returned close
// function flushes and releases the file.
func New(path, level string) (*zap.Logger, func() error, error) {
	if path == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var ws zapcore.WriteSyncer
	var closeFile func() error
	if path == "-" {
		ws = zapcore.Lock(os.Stderr)
		closeFile = func() error { return nil }
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("creating log dir: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		ws = zapcore.AddSync(lj)
		closeFile = lj.Close
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), ws, lvl)
	logger := zap.New(core)

	return logger, func() error {
		_ = logger.Sync()
		return closeFile()
	}, nil
}
