package export

import "time"

// Clock abstracts wall time so animation pacing is testable. The real
// clock drives the live editor; tests substitute a virtual one.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock returns a Clock backed by the system clock.
func RealClock() Clock { return realClock{} }

// VirtualClock is a Clock whose time advances only when Sleep is called.
// It lets animation tests run instantly and deterministically.
type VirtualClock struct {
	now    time.Time
	sleeps int
}

// NewVirtualClock starts a virtual clock at an arbitrary fixed instant.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{now: time.Unix(1700000000, 0)}
}

func (c *VirtualClock) Now() time.Time { return c.now }

func (c *VirtualClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.sleeps++
}

// Sleeps reports how many times Sleep was called.
func (c *VirtualClock) Sleeps() int { return c.sleeps }
