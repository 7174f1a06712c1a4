// internal/modem/classify.go
package modem

import (
	"errors"
	"net"

	tec "github.com/jbenet/go-temp-err-catcher"
	"golang.org/x/sys/unix"
)

// IsTransient reports whether a connection failure to the modem is worth
// retrying: timeouts, temporarily unavailable resources, and an unreachable
// host (the modem drops off the LAN while it reboots).
// Anything else (refused, no route, permission) is treated as permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	if tec.ErrIsTemporary(err) {
		return true
	}
	return errors.Is(err, unix.EAGAIN) ||
		errors.Is(err, unix.ETIMEDOUT) ||
		errors.Is(err, unix.EHOSTUNREACH)
}
