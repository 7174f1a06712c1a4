// internal/wait/wait.go
package wait

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// Sleep blocks for d on clk, or until ctx is done.
// It returns ctx.Err() if the sleep was cut short, nil otherwise.
// A ctx that is already done returns immediately without arming a timer.
func Sleep(ctx context.Context, clk clock.Clock, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t := clk.Timer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
