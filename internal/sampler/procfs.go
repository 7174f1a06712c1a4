// internal/sampler/procfs.go
package sampler

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tamzrod/linkd/internal/fault"
)

// DefaultProcNetDev is the Linux per-interface statistics table.
const DefaultProcNetDev = "/proc/net/dev"

// Opener opens the statistics text. Tests substitute fixtures.
type Opener func(path string) (io.ReadCloser, error)

func openFile(path string) (io.ReadCloser, error) { return os.Open(path) }

// ProcNetDev reads the RX byte counter from /proc/net/dev formatted text:
//
//	Inter-|   Receive                            |  Transmit
//	 face |bytes    packets errs drop fifo ...   |bytes ...
//	  eth0: 1386545    9873    0    0    0 ...
//
// The first field after "<name>:" is the received-byte count.
type ProcNetDev struct {
	Path  string
	Iface string
	Open  Opener
}

// NewProcNetDev reads iface from the table at path (DefaultProcNetDev if empty).
func NewProcNetDev(path, iface string) *ProcNetDev {
	if path == "" {
		path = DefaultProcNetDev
	}
	return &ProcNetDev{Path: path, Iface: iface, Open: openFile}
}

// Interface returns the monitored interface name.
func (p *ProcNetDev) Interface() string { return p.Iface }

// RxBytes rereads the table and returns iface's received-byte count.
func (p *ProcNetDev) RxBytes() (uint64, error) {
	open := p.Open
	if open == nil {
		open = openFile
	}

	rc, err := open(p.Path)
	if err != nil {
		return 0, fault.Attr(fault.Wrap(err, fault.KindFatal, "unable to open network devices file"), "path", p.Path)
	}
	defer rc.Close()

	return parseRxBytes(rc, p.Iface, p.Path)
}

func parseRxBytes(r io.Reader, iface, path string) (uint64, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue // header lines
		}
		if strings.TrimSpace(line[:colon]) != iface {
			continue
		}

		fields := strings.Fields(line[colon+1:])
		if len(fields) == 0 {
			return 0, fault.Attr(fault.Fatalf("malformed entry for %q in %s", iface, path), "path", path)
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return 0, fault.Attr(fault.Wrapf(err, fault.KindFatal, "bad receive byte field for %q in %s", iface, path), "path", path)
		}
		return v, nil
	}

	if err := sc.Err(); err != nil {
		return 0, fault.Attr(fault.Wrap(err, fault.KindFatal, "error reading network devices file"), "path", path)
	}
	return 0, fault.Attr(fault.Fatalf("unable to find interface %q in %s", iface, path), "path", path)
}
