// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"log/syslog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Sink selects where log lines go. The CLI picks it; the core never does.
type Sink int

const (
	// SinkConsole writes warnings and errors to stderr, everything else to stdout.
	SinkConsole Sink = iota
	// SinkSyslog writes to the local system log, facility daemon.
	SinkSyslog
)

func (s Sink) String() string {
	switch s {
	case SinkConsole:
		return "console"
	case SinkSyslog:
		return "syslog"
	default:
		return fmt.Sprintf("sink(%d)", int(s))
	}
}

// Options configures New.
type Options struct {
	Sink  Sink
	Tag   string // program name; prefixes console lines, tags syslog lines
	Debug bool

	// Console destinations. Nil means os.Stdout / os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// New builds the process logger.
func New(opts Options) (*zap.SugaredLogger, error) {
	min := zapcore.InfoLevel
	if opts.Debug {
		min = zapcore.DebugLevel
	}

	var core zapcore.Core
	switch opts.Sink {
	case SinkConsole:
		core = consoleCore(opts, min)
	case SinkSyslog:
		w, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_INFO, opts.Tag)
		if err != nil {
			return nil, fmt.Errorf("logging: open syslog: %w", err)
		}
		core = newSyslogCore(w, min)
	default:
		return nil, fmt.Errorf("logging: unknown sink %s", opts.Sink)
	}

	l := zap.New(core)
	if opts.Tag != "" && opts.Sink == SinkConsole {
		l = l.Named(opts.Tag)
	}
	return l.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func consoleCore(opts Options, min zapcore.Level) zapcore.Core {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if isTerminal(stdout) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	enc := zapcore.NewConsoleEncoder(encCfg)

	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= min && l >= zapcore.WarnLevel
	})
	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= min && l < zapcore.WarnLevel
	})

	return zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(stderr)), high),
		zapcore.NewCore(enc.Clone(), zapcore.Lock(zapcore.AddSync(stdout)), low),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
