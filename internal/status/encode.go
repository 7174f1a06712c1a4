// internal/status/encode.go
package status

import "time"

// Gauges are the instantaneous values exported for a Snapshot.
type Gauges struct {
	LinkState   float64
	LastDelta   float64
	SecondsDown float64
}

// Encode converts a Snapshot into exported gauge values as of now.
// No IO. No side effects.
func Encode(s Snapshot, now time.Time) Gauges {
	g := Gauges{
		LinkState: float64(s.Link),
		LastDelta: float64(s.LastDelta),
	}

	if s.Link == LinkDown && !s.DownSince.IsZero() {
		if d := now.Sub(s.DownSince); d > 0 {
			g.SecondsDown = d.Seconds()
		}
	}

	return g
}
