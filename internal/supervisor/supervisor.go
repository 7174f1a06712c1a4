// internal/supervisor/supervisor.go
package supervisor

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/tamzrod/linkd/internal/modem"
	"github.com/tamzrod/linkd/internal/status"
	"github.com/tamzrod/linkd/internal/wait"
)

// ---- collaborators ----

// RateSampler returns bytes received since its previous call.
type RateSampler interface {
	Sample() (uint64, error)
}

// Prober answers "is the internet reachable right now".
type Prober interface {
	IsUp(ctx context.Context) (bool, error)
}

// Resetter restarts the modem and returns once it has settled.
type Resetter interface {
	Reset(ctx context.Context) (modem.Outcome, error)
}

// ---- configuration ----

// Config holds the loop timing. All fields are required.
type Config struct {
	CheckInterval time.Duration
	QuietInterval time.Duration
	RateThreshold uint64
}

func (c Config) validate() error {
	if c.CheckInterval <= 0 {
		return errors.New("supervisor: check interval must be > 0")
	}
	if c.QuietInterval <= 0 {
		return errors.New("supervisor: quiet interval must be > 0")
	}
	return nil
}

// ---- supervisor ----

// Supervisor runs the monitor/decide/recover loop on a single goroutine.
type Supervisor struct {
	cfg      Config
	sampler  RateSampler
	prober   Prober
	resetter Resetter

	clock    clock.Clock
	log      *zap.SugaredLogger
	recorder *status.Recorder
}

// Option customises a Supervisor.
type Option func(*Supervisor)

// WithClock sets the time source for every idle sleep.
func WithClock(c clock.Clock) Option { return func(s *Supervisor) { s.clock = c } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option { return func(s *Supervisor) { s.log = l } }

// WithRecorder sets where loop activity is reported. The default
// records in memory only.
func WithRecorder(r *status.Recorder) Option { return func(s *Supervisor) { s.recorder = r } }

// New wires a supervisor. sampler, prober and resetter are required.
func New(cfg Config, sampler RateSampler, prober Prober, resetter Resetter, opts ...Option) (*Supervisor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if sampler == nil || prober == nil || resetter == nil {
		return nil, errors.New("supervisor: sampler, prober and resetter required")
	}

	s := &Supervisor{
		cfg:      cfg,
		sampler:  sampler,
		prober:   prober,
		resetter: resetter,
		clock:    clock.New(),
		log:      zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.recorder == nil {
		s.recorder = status.NewRecorder(status.WithClock(s.clock))
	}
	return s, nil
}

// Step runs one Checking pass and returns the state to enter next.
// It never sleeps and never resets; Run acts on the returned state.
//
// A done ctx yields Terminated without touching any collaborator.
func (s *Supervisor) Step(ctx context.Context) (State, error) {
	if ctx.Err() != nil {
		return Terminated, nil
	}
	s.recorder.Transition(Checking)

	delta, err := s.sampler.Sample()
	if err != nil {
		return Terminated, err
	}

	if delta >= s.cfg.RateThreshold {
		s.recorder.Sample(delta, true)
		return IdleRoutine, nil
	}
	s.recorder.Sample(delta, false)
	s.log.Debugw("low traffic, probing", "bytes", delta, "threshold", s.cfg.RateThreshold)

	up, err := s.prober.IsUp(ctx)
	if err != nil {
		return Terminated, err
	}
	s.recorder.Probe(up)

	if up {
		return IdleQuiet, nil
	}

	s.log.Infow("connectivity down", "bytes", delta)
	return Recovering, nil
}

// Run loops until ctx is cancelled, which returns nil, or a component
// fails, which returns that error unhandled.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		next, err := s.Step(ctx)
		if err != nil {
			return s.exit(ctx, err)
		}

		switch next {
		case Terminated:
			return s.exit(ctx, nil)

		case IdleRoutine:
			err = s.idle(ctx, next, s.cfg.CheckInterval)

		case IdleQuiet:
			err = s.idle(ctx, next, s.cfg.QuietInterval)

		case Recovering:
			err = s.recover(ctx)
		}

		if err != nil {
			return s.exit(ctx, err)
		}
	}
}

// recover resets the modem. The reset's own settle time paces the loop, so
// Checking follows immediately.
func (s *Supervisor) recover(ctx context.Context) error {
	s.recorder.Transition(Recovering)
	s.flush()

	s.log.Info("resetting cable modem")
	out, err := s.resetter.Reset(ctx)
	if err != nil {
		return err
	}
	s.recorder.Reset(out)

	if out == modem.OutcomeRecovered {
		s.log.Info("connectivity restored before modem reset")
	} else {
		s.log.Info("modem reset complete")
	}
	return nil
}

func (s *Supervisor) idle(ctx context.Context, st State, d time.Duration) error {
	s.recorder.Transition(st)
	s.flush()
	return wait.Sleep(ctx, s.clock, d)
}

func (s *Supervisor) flush() {
	if err := s.recorder.Flush(); err != nil {
		s.log.Warnw("unable to write metrics", "error", err)
	}
}

// exit maps the loop's terminating error: cancellation is a clean stop.
func (s *Supervisor) exit(ctx context.Context, err error) error {
	if ctx.Err() != nil && (err == nil || errors.Is(err, ctx.Err())) {
		s.recorder.Transition(Terminated)
		s.flush()
		s.log.Info("shutting down")
		return nil
	}
	return err
}
