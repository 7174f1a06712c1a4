// internal/supervisor/supervisor_test.go
package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/linkd/internal/fault"
	"github.com/tamzrod/linkd/internal/modem"
	"github.com/tamzrod/linkd/internal/status"
)

// ---- fakes ----

type fakeSampler struct {
	deltas []uint64
	err    error
	calls  int
}

func (f *fakeSampler) Sample() (uint64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	d := f.deltas[0]
	if len(f.deltas) > 1 {
		f.deltas = f.deltas[1:]
	}
	return d, nil
}

type fakeProber struct {
	answers []bool
	err     error
	calls   int
}

func (f *fakeProber) IsUp(ctx context.Context) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	up := f.answers[0]
	if len(f.answers) > 1 {
		f.answers = f.answers[1:]
	}
	return up, nil
}

type fakeResetter struct {
	outcome modem.Outcome
	err     error
	calls   int
}

func (f *fakeResetter) Reset(ctx context.Context) (modem.Outcome, error) {
	f.calls++
	return f.outcome, f.err
}

// recordingClock reports every sleep the loop arms, after arming it.
type recordingClock struct {
	*clock.Mock
	timers chan time.Duration
}

func newRecordingClock() *recordingClock {
	return &recordingClock{Mock: clock.NewMock(), timers: make(chan time.Duration)}
}

func (c *recordingClock) Timer(d time.Duration) *clock.Timer {
	t := c.Mock.Timer(d)
	c.timers <- d
	return t
}

// ---- helpers ----

var refCfg = Config{
	CheckInterval: 5 * time.Second,
	QuietInterval: 300 * time.Second,
	RateThreshold: 20480,
}

func newSupervisor(t *testing.T, s RateSampler, p Prober, r Resetter, opts ...Option) *Supervisor {
	t.Helper()
	sv, err := New(refCfg, s, p, r, opts...)
	require.NoError(t, err)
	return sv
}

func nextSleep(t *testing.T, c *recordingClock) time.Duration {
	t.Helper()
	select {
	case d := <-c.timers:
		return d
	case <-time.After(5 * time.Second):
		t.Fatal("loop never slept")
		return 0
	}
}

func runAsync(ctx context.Context, sv *Supervisor) chan error {
	done := make(chan error, 1)
	go func() { done <- sv.Run(ctx) }()
	return done
}

func waitDone(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

// ---- New ----

func TestNew_Validation(t *testing.T) {
	s, p, r := &fakeSampler{}, &fakeProber{}, &fakeResetter{}

	_, err := New(Config{QuietInterval: time.Second}, s, p, r)
	assert.Error(t, err)

	_, err = New(Config{CheckInterval: time.Second}, s, p, r)
	assert.Error(t, err)

	_, err = New(refCfg, nil, p, r)
	assert.Error(t, err)

	_, err = New(refCfg, s, p, nil)
	assert.Error(t, err)
}

// ---- Step ----

func TestStep_HighTrafficSkipsProbe(t *testing.T) {
	s := &fakeSampler{deltas: []uint64{50000}}
	p := &fakeProber{answers: []bool{false}}
	r := &fakeResetter{}

	next, err := newSupervisor(t, s, p, r).Step(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IdleRoutine, next)
	assert.Zero(t, p.calls)
	assert.Zero(t, r.calls)
}

func TestStep_ThresholdIsInclusive(t *testing.T) {
	s := &fakeSampler{deltas: []uint64{20480}}
	p := &fakeProber{answers: []bool{false}}

	next, err := newSupervisor(t, s, p, &fakeResetter{}).Step(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IdleRoutine, next)
	assert.Zero(t, p.calls)
}

func TestStep_QuietButReachable(t *testing.T) {
	s := &fakeSampler{deltas: []uint64{100}}
	p := &fakeProber{answers: []bool{true}}
	r := &fakeResetter{}

	next, err := newSupervisor(t, s, p, r).Step(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IdleQuiet, next)
	assert.Equal(t, 1, p.calls)
	assert.Zero(t, r.calls)
}

func TestStep_QuietAndUnreachable(t *testing.T) {
	s := &fakeSampler{deltas: []uint64{100}}
	p := &fakeProber{answers: []bool{false}}
	r := &fakeResetter{}
	rec := status.NewRecorder(status.WithClock(clock.NewMock()))

	next, err := newSupervisor(t, s, p, r, WithRecorder(rec)).Step(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Recovering, next)
	assert.Zero(t, r.calls, "Step decides, Run resets")
	assert.Equal(t, status.LinkDown, rec.Snapshot().Link)
	assert.Equal(t, uint64(100), rec.Snapshot().LastDelta)
}

func TestStep_CancelledDoesNothing(t *testing.T) {
	s := &fakeSampler{deltas: []uint64{0}}
	p := &fakeProber{answers: []bool{false}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	next, err := newSupervisor(t, s, p, &fakeResetter{}).Step(ctx)
	require.NoError(t, err)

	assert.Equal(t, Terminated, next)
	assert.Zero(t, s.calls)
	assert.Zero(t, p.calls)
}

func TestStep_SamplerErrorPropagates(t *testing.T) {
	boom := fault.Fatalf("interface eth0 not found")
	s := &fakeSampler{err: boom}
	p := &fakeProber{answers: []bool{true}}

	_, err := newSupervisor(t, s, p, &fakeResetter{}).Step(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, fault.IsFatal(err))
	assert.Zero(t, p.calls)
}

func TestStep_ProbeErrorPropagates(t *testing.T) {
	boom := fault.Fatalf("unable to run /bin/ping")
	s := &fakeSampler{deltas: []uint64{0}}
	p := &fakeProber{err: boom}

	_, err := newSupervisor(t, s, p, &fakeResetter{}).Step(context.Background())
	assert.ErrorIs(t, err, boom)
}

// ---- Run ----

func TestRun_SleepsMatchState(t *testing.T) {
	clk := newRecordingClock()
	s := &fakeSampler{deltas: []uint64{50000, 100, 100, 50000}}
	p := &fakeProber{answers: []bool{true, false}}
	r := &fakeResetter{outcome: modem.OutcomeSent}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, newSupervisor(t, s, p, r, WithClock(clk)))

	// busy link: routine interval
	assert.Equal(t, 5*time.Second, nextSleep(t, clk))
	clk.Add(5 * time.Second)

	// quiet but reachable: quiet interval
	assert.Equal(t, 300*time.Second, nextSleep(t, clk))
	clk.Add(300 * time.Second)

	// quiet and unreachable: reset, then straight back to checking;
	// the next sleep comes from the busy sample after the reset
	assert.Equal(t, 5*time.Second, nextSleep(t, clk))
	assert.Equal(t, 1, r.calls)

	cancel()
	require.NoError(t, waitDone(t, done))

	assert.Equal(t, 4, s.calls)
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, 1, r.calls)
}

func TestRun_ShutdownDuringQuietSleep(t *testing.T) {
	clk := newRecordingClock()
	s := &fakeSampler{deltas: []uint64{0}}
	p := &fakeProber{answers: []bool{true}}
	r := &fakeResetter{}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, newSupervisor(t, s, p, r, WithClock(clk)))

	assert.Equal(t, 300*time.Second, nextSleep(t, clk))
	cancel()

	// returns without any time passing and without another cycle
	require.NoError(t, waitDone(t, done))
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, 1, p.calls)
	assert.Zero(t, r.calls)
}

func TestRun_CancelledResetIsCleanShutdown(t *testing.T) {
	s := &fakeSampler{deltas: []uint64{0}}
	p := &fakeProber{answers: []bool{false}}

	ctx, cancel := context.WithCancel(context.Background())
	r := &cancellingResetter{cancel: cancel}

	err := newSupervisor(t, s, p, r, WithClock(clock.NewMock())).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.calls)
}

type cancellingResetter struct{ cancel context.CancelFunc }

func (c *cancellingResetter) Reset(ctx context.Context) (modem.Outcome, error) {
	c.cancel()
	return modem.OutcomeSent, ctx.Err()
}

func TestRun_FatalErrorsAbort(t *testing.T) {
	tests := []struct {
		name string
		s    *fakeSampler
		p    *fakeProber
		r    *fakeResetter
	}{
		{
			name: "sampler",
			s:    &fakeSampler{err: fault.Fatalf("open /proc/net/dev")},
			p:    &fakeProber{answers: []bool{true}},
			r:    &fakeResetter{},
		},
		{
			name: "probe",
			s:    &fakeSampler{deltas: []uint64{0}},
			p:    &fakeProber{err: fault.Fatalf("unable to run /bin/ping")},
			r:    &fakeResetter{},
		},
		{
			name: "resetter",
			s:    &fakeSampler{deltas: []uint64{0}},
			p:    &fakeProber{answers: []bool{false}},
			r:    &fakeResetter{err: fault.Fatalf("unable to contact modem")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newSupervisor(t, tt.s, tt.p, tt.r, WithClock(clock.NewMock())).Run(context.Background())
			require.Error(t, err)
			assert.True(t, fault.IsFatal(err))
		})
	}
}

func TestRun_AlreadyCancelled(t *testing.T) {
	s := &fakeSampler{deltas: []uint64{0}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newSupervisor(t, s, &fakeProber{answers: []bool{true}}, &fakeResetter{}).Run(ctx)
	assert.NoError(t, err)
	assert.Zero(t, s.calls)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "recovering", Recovering.String())
	assert.Equal(t, "unknown", State(42).String())
}
