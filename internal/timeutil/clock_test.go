package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	if d := clock.Since(past); d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestMockClock_SetAdvance(t *testing.T) {
	fixed := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	clock := NewMockClock(fixed)
	if !clock.Now().Equal(fixed) {
		t.Errorf("got %v, want %v", clock.Now(), fixed)
	}

	clock.Advance(5 * time.Second)
	if got := clock.Since(fixed); got != 5*time.Second {
		t.Errorf("Since() = %v, want 5s", got)
	}

	later := fixed.Add(time.Hour)
	clock.Set(later)
	if !clock.Now().Equal(later) {
		t.Errorf("after Set got %v, want %v", clock.Now(), later)
	}
}

func TestMockClock_AutoStep(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	clock.AutoStep(3 * time.Millisecond)

	start := clock.Now()
	if got := clock.Since(start); got != 3*time.Millisecond {
		t.Errorf("Since() = %v, want 3ms", got)
	}
	if got := clock.Since(start); got != 3*time.Millisecond {
		t.Errorf("Since() must not advance the clock, got %v", got)
	}
}

var _ Clock = RealClock{}
var _ Clock = (*MockClock)(nil)
