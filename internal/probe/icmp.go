// internal/probe/icmp.go
package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/tamzrod/linkd/internal/fault"
)

// PingFunc sends one echo request and reports how many replies arrived.
type PingFunc func(target string, timeout time.Duration) (int, error)

// ICMPProber pings in-process instead of spawning an executable.
type ICMPProber struct {
	Target  string
	Timeout time.Duration
	Ping    PingFunc
}

// NewICMPProber pings target once, waiting at most timeout for the reply.
func NewICMPProber(target string, timeout time.Duration) *ICMPProber {
	return &ICMPProber{Target: target, Timeout: timeout, Ping: pingOnce}
}

// IsUp reports whether a reply arrived. Failing to open the ICMP socket
// is fatal.
func (p *ICMPProber) IsUp(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	recv, err := p.Ping(p.Target, p.Timeout)
	if err != nil {
		return false, fault.Attr(fault.Wrap(err, fault.KindFatal, "unable to ping"), "target", p.Target)
	}
	return recv > 0, nil
}

func pingOnce(target string, timeout time.Duration) (int, error) {
	pinger, err := probing.NewPinger(target)
	if err != nil {
		return 0, fmt.Errorf("failed to create pinger: %w", err)
	}

	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(false)

	if err := pinger.Run(); err != nil {
		return 0, err
	}
	return pinger.Statistics().PacketsRecv, nil
}
