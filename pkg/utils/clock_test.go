package utils

import (
	"math"
	"testing"
	"time"
)

// TestClockAdvance 测试固定步长推进
func TestClockAdvance(t *testing.T) {
	c := NewClock()
	for i := 0; i < 60; i++ {
		c.Advance(1.0 / 60.0)
	}

	if math.Abs(c.Elapsed-1.0) > 1e-9 {
		t.Errorf("Elapsed = %v, want 1.0", c.Elapsed)
	}
	if math.Abs(c.Delta-1.0/60.0) > 1e-12 {
		t.Errorf("Delta = %v, want %v", c.Delta, 1.0/60.0)
	}
	if c.Now() != c.Elapsed {
		t.Errorf("Now() = %v, want Elapsed %v", c.Now(), c.Elapsed)
	}
}

// TestClockAdvanceNegative 负步长被视为 0，时钟保持单调
func TestClockAdvanceNegative(t *testing.T) {
	c := NewClock()
	c.Advance(0.5)
	c.Advance(-1)

	if c.Elapsed != 0.5 {
		t.Errorf("Elapsed = %v, want 0.5", c.Elapsed)
	}
	if c.Delta != 0 {
		t.Errorf("Delta = %v, want 0", c.Delta)
	}
}

// TestClockUpdate 测试墙钟驱动
func TestClockUpdate(t *testing.T) {
	c := NewClock()
	start := time.Unix(1000, 0)

	c.Update(start)
	if c.Delta != 0 || c.Elapsed != 0 {
		t.Fatalf("first Update should only record start, got delta=%v elapsed=%v", c.Delta, c.Elapsed)
	}

	c.Update(start.Add(250 * time.Millisecond))
	c.Update(start.Add(1 * time.Second))

	if math.Abs(c.Delta-0.75) > 1e-9 {
		t.Errorf("Delta = %v, want 0.75", c.Delta)
	}
	if math.Abs(c.Elapsed-1.0) > 1e-9 {
		t.Errorf("Elapsed = %v, want 1.0", c.Elapsed)
	}

	// 时间回退时 Delta 不为负
	c.Update(start.Add(500 * time.Millisecond))
	if c.Delta != 0 {
		t.Errorf("Delta after clock skew = %v, want 0", c.Delta)
	}
}
