// internal/status/snapshot.go
package status

import "time"

// Snapshot is the observable state of the link at one instant.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Link      LinkState
	LastDelta uint64

	// DownSince is when the link was first seen down; zero unless Link is LinkDown.
	DownSince time.Time
}
