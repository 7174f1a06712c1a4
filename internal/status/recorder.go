// internal/status/recorder.go
package status

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder accumulates loop activity as Prometheus metrics on a private
// registry. It is owned by the supervisor goroutine; no locking beyond what
// the metric types already do.
type Recorder struct {
	clock    clock.Clock
	textfile string
	registry *prometheus.Registry

	snap Snapshot

	samples     prometheus.Counter
	probes      *prometheus.CounterVec
	resets      *prometheus.CounterVec
	transitions *prometheus.CounterVec

	linkState   prometheus.Gauge
	lastDelta   prometheus.Gauge
	secondsDown prometheus.Gauge
}

// RecorderOption customises a Recorder.
type RecorderOption func(*Recorder)

// WithClock sets the time source used for seconds_down.
func WithClock(c clock.Clock) RecorderOption { return func(r *Recorder) { r.clock = c } }

// WithTextfile makes Flush write the registry to path in the node_exporter
// textfile format. Empty disables it.
func WithTextfile(path string) RecorderOption { return func(r *Recorder) { r.textfile = path } }

// NewRecorder creates a recorder with all metrics registered.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		clock:    clock.New(),
		registry: prometheus.NewRegistry(),

		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: metricSamples,
			Help: "Interface counter samples taken.",
		}),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: metricProbes,
			Help: "Connectivity probes run, by result.",
		}, []string{"result"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: metricResets,
			Help: "Modem reset attempts, by outcome.",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: metricTransitions,
			Help: "Supervisor state transitions, by target state.",
		}, []string{"state"}),

		linkState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: metricLinkState,
			Help: "Last link verdict (0 unknown, 1 up, 2 down).",
		}),
		lastDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: metricLastDelta,
			Help: "Bytes received during the last check interval.",
		}),
		secondsDown: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: metricSecondsDown,
			Help: "Seconds since the link was first seen down, 0 while up.",
		}),
	}

	for _, o := range opts {
		o(r)
	}

	r.registry.MustRegister(
		r.samples, r.probes, r.resets, r.transitions,
		r.linkState, r.lastDelta, r.secondsDown,
	)

	// pre-create label values so the series exist from the first scrape
	r.probes.WithLabelValues(ProbeUp)
	r.probes.WithLabelValues(ProbeDown)

	return r
}

// Snapshot returns the current observable state.
func (r *Recorder) Snapshot() Snapshot { return r.snap }

// Sample records one counter delta. A delta at or above threshold is
// evidence the link is up.
func (r *Recorder) Sample(delta uint64, aboveThreshold bool) {
	r.samples.Inc()
	r.snap.LastDelta = delta
	if aboveThreshold {
		r.setLink(LinkUp)
	}
	r.update()
}

// Probe records one probe verdict.
func (r *Recorder) Probe(up bool) {
	if up {
		r.probes.WithLabelValues(ProbeUp).Inc()
		r.setLink(LinkUp)
	} else {
		r.probes.WithLabelValues(ProbeDown).Inc()
		r.setLink(LinkDown)
	}
	r.update()
}

// Reset records the outcome of one modem reset.
func (r *Recorder) Reset(outcome fmt.Stringer) {
	r.resets.WithLabelValues(outcome.String()).Inc()
}

// Transition records entry into a supervisor state.
func (r *Recorder) Transition(state fmt.Stringer) {
	r.transitions.WithLabelValues(state.String()).Inc()
}

// Flush writes the textfile if one is configured.
func (r *Recorder) Flush() error {
	if r.textfile == "" {
		return nil
	}
	r.update()
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		return fmt.Errorf("status: write textfile %s: %w", r.textfile, err)
	}
	return nil
}

func (r *Recorder) setLink(s LinkState) {
	if s == LinkDown && r.snap.Link != LinkDown {
		r.snap.DownSince = r.clock.Now()
	}
	if s != LinkDown {
		r.snap.DownSince = time.Time{}
	}
	r.snap.Link = s
}

func (r *Recorder) update() {
	g := Encode(r.snap, r.clock.Now())
	r.linkState.Set(g.LinkState)
	r.lastDelta.Set(g.LastDelta)
	r.secondsDown.Set(g.SecondsDown)
}
