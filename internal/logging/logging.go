// Package logging builds the run logger: a deterministic diagnostic log file
// plus an optional console on stderr.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the sinks. Nil writers are skipped.
type Options struct {
	File    io.Writer // diagnostic log, every level, no timestamps
	Stderr  io.Writer // console, warnings and errors unless Verbose
	Verbose bool
}

// FileEncoderConfig renders "LEVEL<TAB>message<TAB>{fields}" lines without a
// time key, so two runs over the same input produce the same log.
func FileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = "\t"
	return cfg
}

// New returns a logger teeing to the configured sinks. With no sinks it is a
// no-op logger.
func New(o Options) *zap.Logger {
	var cores []zapcore.Core
	if o.File != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(FileEncoderConfig()),
			zapcore.AddSync(o.File),
			zapcore.DebugLevel,
		))
	}
	if o.Stderr != nil {
		level := zapcore.WarnLevel
		if o.Verbose {
			level = zapcore.DebugLevel
		}
		cfg := FileEncoderConfig()
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zapcore.AddSync(o.Stderr),
			level,
		))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...))
}
