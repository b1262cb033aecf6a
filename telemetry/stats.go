// Package telemetry accumulates per-window visualizer statistics and writes
// them to CSV for offline inspection.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowEndFrame int64   `csv:"window_end"`
	TimeSec        float64 `csv:"time"`

	// Gesture events during the window
	FistEvents    int   `csv:"fist_events"`
	OpenEvents    int   `csv:"open_events"`
	MoveEvents    int   `csv:"move_events"`
	DroppedEvents int64 `csv:"dropped_events"`

	// Field state transitions actually taken (idempotent re-requests
	// excluded)
	FormTransitions     int    `csv:"form_transitions"`
	DisperseTransitions int    `csv:"disperse_transitions"`
	FieldState          string `csv:"field_state"`

	// Frame time distribution in milliseconds
	FrameMsMean float64 `csv:"frame_ms_mean"`
	FrameMsStd  float64 `csv:"frame_ms_std"`
	FrameMsP50  float64 `csv:"frame_ms_p50"`
	FrameMsP95  float64 `csv:"frame_ms_p95"`
}

// FrameTimeStats computes mean, standard deviation, and the 50th/95th
// percentiles of frame times in milliseconds. Returns zeros for an empty
// sample.
func FrameTimeStats(ms []float64) (mean, std, p50, p95 float64) {
	if len(ms) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(ms, nil)
	if len(ms) > 1 {
		std = stat.StdDev(ms, nil)
	}

	sorted := make([]float64, len(ms))
	copy(sorted, ms)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)

	return mean, std, p50, p95
}
