//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type hostClock struct {
	start time.Time
	now   func() time.Time
}

func newHostClock() *hostClock {
	return newHostClockWith(time.Now)
}

func newHostClockWith(now func() time.Time) *hostClock {
	return &hostClock{start: now(), now: now}
}

// Micros returns microseconds since the clock was created, truncated to 32 bits
// like a hardware timer.
func (c *hostClock) Micros() uint32 {
	return uint32(c.now().Sub(c.start) / time.Microsecond)
}

// ManualClock only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now uint32
}

// NewManualClock starts at start microseconds.
func NewManualClock(start uint32) *ManualClock { return &ManualClock{now: start} }

func (c *ManualClock) Micros() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward, wrapping like the hardware counter.
func (c *ManualClock) Advance(us uint32) {
	c.mu.Lock()
	c.now += us
	c.mu.Unlock()
}
