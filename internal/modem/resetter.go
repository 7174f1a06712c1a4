// internal/modem/resetter.go
package modem

import (
	"context"
	"errors"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/tamzrod/linkd/internal/fault"
	"github.com/tamzrod/linkd/internal/probe"
	"github.com/tamzrod/linkd/internal/wait"
)

// Outcome says how a Reset call ended.
type Outcome int

const (
	// OutcomeSent: the restart command was delivered and the settle time elapsed.
	OutcomeSent Outcome = iota
	// OutcomeRecovered: the link came back while the modem was unreachable;
	// no command was sent.
	OutcomeRecovered
)

func (o Outcome) String() string {
	if o == OutcomeRecovered {
		return "recovered"
	}
	return "sent"
}

// attempt tracks one Reset call. failures is for logging only; it never
// bounds the retries.
type attempt struct {
	dials    int
	failures int
}

// Resetter restarts the modem through its web interface.
// Not safe to call back-to-back: a delivered command reboots real hardware.
type Resetter struct {
	cfg     Config
	dialer  Dialer
	prober  probe.Prober
	clock   clock.Clock
	log     *zap.SugaredLogger
	request []byte
}

// Option customises a Resetter.
type Option func(*Resetter)

// WithClock sets the time source for the settle and backoff sleeps.
func WithClock(c clock.Clock) Option { return func(r *Resetter) { r.clock = c } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option { return func(r *Resetter) { r.log = l } }

// New creates a resetter. prober re-validates the link between retries.
func New(cfg Config, dialer Dialer, prober probe.Prober, opts ...Option) (*Resetter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if dialer == nil {
		return nil, errors.New("modem: dialer required")
	}
	if prober == nil {
		return nil, errors.New("modem: prober required")
	}

	r := &Resetter{
		cfg:     cfg,
		dialer:  dialer,
		prober:  prober,
		clock:   clock.New(),
		log:     zap.NewNop().Sugar(),
		request: BuildRestartRequest(cfg.Address),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Reset connects to the modem and sends the restart command, retrying
// unreachable-modem failures forever with a settle-time backoff. Before each
// retry the link is probed; if it is up again Reset returns without sending.
//
// Cancellation is honoured before every dial and during every sleep, never
// mid-connection; a cancelled Reset returns ctx.Err().
// Permanent socket errors and probe failures are returned as fatal.
func (r *Resetter) Reset(ctx context.Context) (Outcome, error) {
	var a attempt
	addr := r.cfg.endpoint()

	for {
		if err := ctx.Err(); err != nil {
			return OutcomeSent, err
		}

		err := r.deliver(addr, &a)
		if err == nil {
			r.log.Infow("restart command sent", "modem", addr, "attempts", a.dials)
			if err := wait.Sleep(ctx, r.clock, r.cfg.SettleTime); err != nil {
				return OutcomeSent, err
			}
			return OutcomeSent, nil
		}

		if fault.GetKind(err) != fault.KindTransient {
			return OutcomeSent, err
		}

		// one error line per burst of failures; the rest go to debug
		if a.failures == 0 {
			r.log.Errorw("error connecting to modem, retrying", "modem", addr, "error", err, "backoff", r.cfg.SettleTime)
		}
		a.failures++
		r.log.Debugw("modem unreachable", append([]any{"error", err, "failures", a.failures}, fault.Fields(err)...)...)

		if err := wait.Sleep(ctx, r.clock, r.cfg.SettleTime); err != nil {
			return OutcomeSent, err
		}

		// the link may have come back on its own (or someone power-cycled the modem)
		up, err := r.prober.IsUp(ctx)
		if err != nil {
			return OutcomeSent, err
		}
		if up {
			r.log.Infow("connectivity restored, restart not needed", "failures", a.failures)
			return OutcomeRecovered, nil
		}
	}
}

// deliver performs one connection attempt and classifies its failure.
// A write failure is classified like a dial failure so that a timed-out
// write is retried too.
func (r *Resetter) deliver(addr string, a *attempt) error {
	a.dials++

	conn, err := r.dialer.Dial("tcp", addr)
	if err == nil {
		err = sendOnce(conn, r.request, r.cfg.WriteTimeout)
	}
	if err == nil {
		return nil
	}

	if IsTransient(err) {
		err = fault.Wrap(err, fault.KindTransient, "modem unreachable")
	} else {
		err = fault.Wrap(err, fault.KindFatal, "unable to contact modem")
	}
	return fault.Attr(fault.Attr(err, "modem", addr), "dials", a.dials)
}
