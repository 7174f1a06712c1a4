// internal/logging/syslog.go
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// priorityWriter is the subset of *syslog.Writer the sink uses.
type priorityWriter interface {
	Err(m string) error
	Warning(m string) error
	Info(m string) error
	Debug(m string) error
}

// prioritySyncer sends each encoded entry at a fixed syslog priority.
type prioritySyncer struct {
	emit func(string) error
}

func (p prioritySyncer) Write(b []byte) (int, error) {
	if err := p.emit(strings.TrimRight(string(b), "\n")); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (p prioritySyncer) Sync() error { return nil }

// newSyslogCore maps zap levels onto syslog priorities.
// Syslog stamps time and host itself, so the encoder carries neither.
func newSyslogCore(w priorityWriter, min zapcore.Level) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	})

	at := func(match func(zapcore.Level) bool) zapcore.LevelEnabler {
		return zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= min && match(l)
		})
	}

	return zapcore.NewTee(
		zapcore.NewCore(enc, prioritySyncer{emit: w.Err},
			at(func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel })),
		zapcore.NewCore(enc.Clone(), prioritySyncer{emit: w.Warning},
			at(func(l zapcore.Level) bool { return l == zapcore.WarnLevel })),
		zapcore.NewCore(enc.Clone(), prioritySyncer{emit: w.Info},
			at(func(l zapcore.Level) bool { return l == zapcore.InfoLevel })),
		zapcore.NewCore(enc.Clone(), prioritySyncer{emit: w.Debug},
			at(func(l zapcore.Level) bool { return l < zapcore.InfoLevel })),
	)
}
