// internal/probe/probe.go
package probe

import (
	"context"
	"fmt"
	"time"
)

// Prober answers whether the link beyond the modem is reachable.
// A negative answer is a normal result, not an error. Errors mean the
// check itself could not be performed.
type Prober interface {
	IsUp(ctx context.Context) (bool, error)
}

// PingArgs builds the argument list for a single bounded ping:
// one packet, an overall deadline in whole seconds (at least 1), numeric target.
func PingArgs(target string, timeout time.Duration) []string {
	secs := int(timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	return []string{fmt.Sprintf("-w%d", secs), "-c1", target}
}
