// internal/sampler/sampler.go
package sampler

import (
	"errors"

	"github.com/tamzrod/linkd/internal/fault"
)

// Source reads the lifetime received-byte counter of one interface.
// The counter is maintained by the OS; it only ever grows, except across
// an interface restart.
type Source interface {
	RxBytes() (uint64, error)
	Interface() string
}

// Sampler turns a monotonically increasing counter into per-call deltas.
// It is the only owner of the previous counter value.
type Sampler struct {
	src  Source
	prev uint64
}

// New creates a sampler. The previous counter starts at zero.
func New(src Source) (*Sampler, error) {
	if src == nil {
		return nil, errors.New("sampler: source required")
	}
	return &Sampler{src: src}, nil
}

// Sample returns the bytes received since the previous call.
//
// The first call returns the interface's lifetime count.
// If the counter went backwards (interface restart, 32-bit wrap) the
// subtraction wraps around in uint64; this is a known limitation and is
// deliberately not corrected here.
// On error the stored counter is left unchanged.
func (s *Sampler) Sample() (uint64, error) {
	cur, err := s.src.RxBytes()
	if err != nil {
		return 0, fault.Attr(err, "interface", s.src.Interface())
	}

	delta := cur - s.prev
	s.prev = cur
	return delta, nil
}
