// internal/status/constants.go
package status

// LinkState is the most recently observed connectivity verdict.
// It is exported for observation only; the supervisor re-derives it every
// cycle and never decides on a cached value.
type LinkState int

// ---- LINK STATES ----

// LinkUnknown is the boot state, before the first cycle completes.
const LinkUnknown LinkState = 0

// LinkUp means traffic was above threshold or the probe succeeded.
const LinkUp LinkState = 1

// LinkDown means the probe failed during a quiet interval.
const LinkDown LinkState = 2

func (s LinkState) String() string {
	switch s {
	case LinkUp:
		return "up"
	case LinkDown:
		return "down"
	default:
		return "unknown"
	}
}

// ---- METRIC NAMES ----

// These names are what node_exporter dashboards key on. They MUST NOT be
// configurable.

const namespace = "linkd"

const (
	metricSamples     = "samples_total"
	metricProbes      = "probes_total"
	metricResets      = "resets_total"
	metricTransitions = "transitions_total"
	metricLinkState   = "link_state"
	metricLastDelta   = "last_delta_bytes"
	metricSecondsDown = "seconds_down"
)

// ---- LABEL VALUES ----

const (
	ProbeUp   = "up"
	ProbeDown = "down"
)
