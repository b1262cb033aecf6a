package telemetry

import (
	"math"
	"testing"
)

func TestFrameTimeStatsEmpty(t *testing.T) {
	mean, std, p50, p95 := FrameTimeStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p95 != 0 {
		t.Errorf("Empty sample returned (%v, %v, %v, %v), want zeros", mean, std, p50, p95)
	}
}

func TestFrameTimeStatsSingleSample(t *testing.T) {
	mean, std, p50, p95 := FrameTimeStats([]float64{16.6})
	if mean != 16.6 {
		t.Errorf("mean = %v, want 16.6", mean)
	}
	if std != 0 {
		t.Errorf("std of one sample = %v, want 0", std)
	}
	if p50 != 16.6 || p95 != 16.6 {
		t.Errorf("percentiles = (%v, %v), want both 16.6", p50, p95)
	}
}

func TestFrameTimeStatsKnownDistribution(t *testing.T) {
	ms := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	mean, std, p50, p95 := FrameTimeStats(ms)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.0276503540974917) > 1e-9 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p95 != 10 {
		t.Errorf("p95 = %v, want 10", p95)
	}
}

func TestFrameTimeStatsUnsortedInput(t *testing.T) {
	shuffled := []float64{8, 2, 10, 4, 6, 1, 9, 3, 7, 5}
	ordered := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	m1, s1, a50, a95 := FrameTimeStats(shuffled)
	m2, s2, b50, b95 := FrameTimeStats(ordered)
	if m1 != m2 || s1 != s2 || a50 != b50 || a95 != b95 {
		t.Errorf("Order-dependent results: (%v,%v,%v,%v) vs (%v,%v,%v,%v)",
			m1, s1, a50, a95, m2, s2, b50, b95)
	}

	// The input slice itself must stay untouched
	if shuffled[0] != 8 || shuffled[2] != 10 {
		t.Error("FrameTimeStats sorted the caller's slice in place")
	}
}
