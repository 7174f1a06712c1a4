// internal/sampler/netlink.go
package sampler

import (
	"github.com/vishvananda/netlink"

	"github.com/tamzrod/linkd/internal/fault"
)

// Netlink reads the RX byte counter from the kernel's 64-bit link statistics.
type Netlink struct {
	Iface  string
	byName func(name string) (netlink.Link, error)
}

// NewNetlink reads iface through the route netlink socket.
func NewNetlink(iface string) *Netlink {
	return &Netlink{Iface: iface, byName: netlink.LinkByName}
}

// Interface returns the monitored interface name.
func (n *Netlink) Interface() string { return n.Iface }

// RxBytes returns the lifetime received-byte count. A missing link is fatal.
func (n *Netlink) RxBytes() (uint64, error) {
	link, err := n.byName(n.Iface)
	if err != nil {
		return 0, fault.Wrapf(err, fault.KindFatal, "unable to find interface %q via netlink", n.Iface)
	}

	stats := link.Attrs().Statistics
	if stats == nil {
		return 0, fault.Fatalf("netlink returned no statistics for %q", n.Iface)
	}
	return stats.RxBytes, nil
}
