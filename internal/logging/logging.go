// =============================================================================
// samcut - Logging
// =============================================================================
//
// This module builds the zap logger for a run. Console output goes to stderr
// in a human-readable format; with log_file set, JSON entries are appended to
// that file as well. The level comes from log_level (or --verbose).
//
// =============================================================================

package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/samcut/internal/config"
)

// Logger is the logging surface the rest of samcut depends on.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

// New builds the run logger. Console output always goes to stderr because
// stdout carries the selected fields.
//
// RETURNS:
//   - The logger.
//   - A cleanup func that flushes the logger and closes the log file. Call it
//     once, when the run is finished.
//   - An error if the level is unknown or the log file cannot be opened.
func New(cfg *config.Config) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, nil, err
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			level,
		),
	}

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, nil, err
		}

		file, err = os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(file),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	cleanup := func() error {
		// Sync on a terminal stderr fails on some platforms; only the file matters.
		_ = logger.Sync()
		if file == nil {
			return nil
		}
		return file.Close()
	}

	return logger, cleanup, nil
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return zap.NewNop().Sugar()
}
