// Package pacer paces the driver loop to a fixed frame period using an
// absolute deadline, with no periodic drift correction: each tick's
// deadline is exactly the previous one plus the period, so a core that
// demands precise real-time cadence never has ticks silently folded
// together to catch up. Grounded on the hybrid sleep/busy-wait technique
// of the reference's timing.AdaptiveLimiter, without its drift-correction
// branch.
package pacer

import "time"

// Pacer blocks each tick until an absolute deadline that advances by a
// fixed period, independent of how late or early the previous tick ran.
type Pacer struct {
	period   time.Duration
	deadline time.Time
	ticks    int64
}

// New builds a Pacer for the given frame period. The first deadline is
// half a period out, not a full period, so the first tick lands on the
// schedule's half-phase rather than trailing a full period behind start.
func New(period time.Duration) *Pacer {
	return &Pacer{period: period, deadline: time.Now().Add(period / 2)}
}

// Tick blocks until the current deadline, then advances the deadline by
// exactly one period. Unlike a relative sleep, a late tick does not push
// later deadlines out: the schedule is absolute from the Pacer's start.
func (p *Pacer) Tick() {
	now := time.Now()
	remaining := p.deadline.Sub(now)

	if remaining > 2*time.Millisecond {
		time.Sleep(remaining - time.Millisecond)
	}
	for time.Now().Before(p.deadline) {
	}

	p.deadline = p.deadline.Add(p.period)
	p.ticks++
}

// Ticks reports how many ticks have elapsed.
func (p *Pacer) Ticks() int64 { return p.ticks }

// Reset restarts the deadline schedule from now, with the same
// half-period initial offset New uses.
func (p *Pacer) Reset() {
	p.deadline = time.Now().Add(p.period / 2)
	p.ticks = 0
}
