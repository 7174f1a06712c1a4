// cmd/linkd/build.go
package main

import (
	"go.uber.org/zap"

	"github.com/tamzrod/linkd/internal/config"
	"github.com/tamzrod/linkd/internal/fault"
	"github.com/tamzrod/linkd/internal/modem"
	"github.com/tamzrod/linkd/internal/probe"
	"github.com/tamzrod/linkd/internal/sampler"
	"github.com/tamzrod/linkd/internal/status"
	"github.com/tamzrod/linkd/internal/supervisor"
)

// --------------------
// Component wiring
// --------------------

// buildSupervisor assembles the loop from a validated, normalized config.
func buildSupervisor(cfg *config.Config, log *zap.SugaredLogger) (*supervisor.Supervisor, error) {
	src, err := buildSource(cfg.Counter)
	if err != nil {
		return nil, err
	}
	smp, err := sampler.New(src)
	if err != nil {
		return nil, err
	}

	prober, err := buildProber(cfg.Probe)
	if err != nil {
		return nil, err
	}

	resetter, err := modem.New(
		modem.Config{
			Address:      cfg.Modem.Address,
			Port:         cfg.Modem.Port,
			DialTimeout:  cfg.Modem.DialTimeout,
			WriteTimeout: cfg.Modem.DialTimeout,
			SettleTime:   cfg.Modem.SettleTime,
		},
		modem.NewDialer(cfg.Modem.DialTimeout),
		prober,
		modem.WithLogger(log.Named("modem")),
	)
	if err != nil {
		return nil, fault.Wrap(err, fault.KindFatal, "modem setup failed")
	}

	rec := status.NewRecorder(status.WithTextfile(cfg.Metrics.Textfile))

	sv, err := supervisor.New(
		supervisor.Config{
			CheckInterval: cfg.Monitor.CheckInterval,
			QuietInterval: cfg.Monitor.QuietInterval,
			RateThreshold: cfg.Monitor.RateThreshold,
		},
		smp, prober, resetter,
		supervisor.WithLogger(log),
		supervisor.WithRecorder(rec),
	)
	if err != nil {
		return nil, fault.Wrap(err, fault.KindFatal, "supervisor setup failed")
	}
	return sv, nil
}

func buildSource(c config.CounterConfig) (sampler.Source, error) {
	switch c.Source {
	case config.SourceProcfs:
		return sampler.NewProcNetDev(c.Path, c.Interface), nil
	case config.SourceNetlink:
		return sampler.NewNetlink(c.Interface), nil
	default:
		return nil, fault.Fatalf("unknown counter source %q", c.Source)
	}
}

func buildProber(c config.ProbeConfig) (probe.Prober, error) {
	switch c.Method {
	case config.ProbeExec:
		return probe.NewExecProber(c.Command, probe.PingArgs(c.Target, c.Timeout)), nil
	case config.ProbeICMP:
		return probe.NewICMPProber(c.Target, c.Timeout), nil
	default:
		return nil, fault.Fatalf("unknown probe method %q", c.Method)
	}
}
