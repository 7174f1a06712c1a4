// internal/modem/client.go
package modem

import (
	"errors"
	"io"
	"net"
	"strconv"
	"time"
)

// Dialer opens TCP connections. *net.Dialer satisfies it.
type Dialer interface {
	Dial(network, address string) (net.Conn, error)
}

// Config describes the modem's administrative endpoint.
type Config struct {
	Address      string        // literal IPv4
	Port         uint16        // normally 80
	DialTimeout  time.Duration // per connection attempt
	WriteTimeout time.Duration
	SettleTime   time.Duration // reboot time; also the retry backoff
}

func (c Config) endpoint() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(int(c.Port)))
}

func (c Config) validate() error {
	if net.ParseIP(c.Address).To4() == nil {
		return errors.New("modem: address must be a literal IPv4 address")
	}
	if c.Port == 0 {
		return errors.New("modem: port required")
	}
	if c.SettleTime <= 0 {
		return errors.New("modem: settle time must be > 0")
	}
	return nil
}

// NewDialer returns a dialer bounded by timeout (2s if unset).
func NewDialer(timeout time.Duration) *net.Dialer {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &net.Dialer{Timeout: timeout}
}

// sendOnce writes pkt on conn and closes it. No response is read.
func sendOnce(conn net.Conn, pkt []byte, timeout time.Duration) error {
	defer conn.Close()

	if timeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return writeAll(conn, pkt)
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
