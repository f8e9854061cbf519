package pacer

import (
	"testing"
	"time"
)

func TestNewInitializesDeadlineAtHalfPeriod(t *testing.T) {
	before := time.Now()
	p := New(10 * time.Millisecond)
	after := time.Now()

	if p.deadline.Before(before.Add(5*time.Millisecond)) || p.deadline.After(after.Add(5*time.Millisecond)) {
		t.Fatalf("deadline = %v, want roughly now+period/2 (between %v and %v)",
			p.deadline, before.Add(5*time.Millisecond), after.Add(5*time.Millisecond))
	}
}

func TestTickAdvancesDeadlineAbsolutely(t *testing.T) {
	p := New(5 * time.Millisecond)
	start := p.deadline

	p.Tick()
	if !p.deadline.Equal(start.Add(5 * time.Millisecond)) {
		t.Fatalf("deadline after one tick = %v, want %v", p.deadline, start.Add(5*time.Millisecond))
	}

	p.Tick()
	if !p.deadline.Equal(start.Add(10 * time.Millisecond)) {
		t.Fatalf("deadline after two ticks = %v, want %v", p.deadline, start.Add(10*time.Millisecond))
	}
	if p.Ticks() != 2 {
		t.Fatalf("Ticks() = %d, want 2", p.Ticks())
	}
}

func TestResetRestartsSchedule(t *testing.T) {
	p := New(time.Millisecond)
	p.Tick()
	p.Tick()
	p.Reset()
	if p.Ticks() != 0 {
		t.Fatalf("Ticks() after Reset = %d, want 0", p.Ticks())
	}
}
