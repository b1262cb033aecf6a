package telemetry

import (
	"time"

	"github.com/pthm-cable/sapling/gesture"
)

// Collector accumulates gesture and frame events within fixed-length time
// windows and produces WindowStats.
type Collector struct {
	windowDuration time.Duration
	windowStart    time.Time
	startOnce      bool

	fistEvents    int
	openEvents    int
	moveEvents    int
	formTaken     int
	disperseTaken int

	frameMs []float64
}

// NewCollector creates a collector with the given window length in seconds.
func NewCollector(windowSec float64) *Collector {
	d := time.Duration(windowSec * float64(time.Second))
	if d < time.Second {
		d = time.Second
	}
	return &Collector{
		windowDuration: d,
		frameMs:        make([]float64, 0, 1024),
	}
}

// RecordEvent counts a gesture event by kind.
func (c *Collector) RecordEvent(kind gesture.EventKind) {
	switch kind {
	case gesture.EventFist:
		c.fistEvents++
	case gesture.EventOpen:
		c.openEvents++
	case gesture.EventMove:
		c.moveEvents++
	}
}

// RecordFormTransition counts a dispersed-to-formed transition.
func (c *Collector) RecordFormTransition() { c.formTaken++ }

// RecordDisperseTransition counts a formed-to-dispersed transition.
func (c *Collector) RecordDisperseTransition() { c.disperseTaken++ }

// RecordFrame adds one frame duration to the window sample.
func (c *Collector) RecordFrame(d time.Duration) {
	if !c.startOnce {
		c.windowStart = time.Now()
		c.startOnce = true
	}
	c.frameMs = append(c.frameMs, float64(d)/float64(time.Millisecond))
}

// ShouldFlush reports whether the current window has run its full length.
func (c *Collector) ShouldFlush() bool {
	return c.startOnce && time.Since(c.windowStart) >= c.windowDuration
}

// Flush produces stats for the finished window and resets the counters.
// frame is the host frame counter; dropped and state describe the moment of
// the flush.
func (c *Collector) Flush(frame int64, dropped int64, state string) WindowStats {
	mean, std, p50, p95 := FrameTimeStats(c.frameMs)

	stats := WindowStats{
		WindowEndFrame:      frame,
		TimeSec:             time.Since(c.windowStart).Seconds(),
		FistEvents:          c.fistEvents,
		OpenEvents:          c.openEvents,
		MoveEvents:          c.moveEvents,
		DroppedEvents:       dropped,
		FormTransitions:     c.formTaken,
		DisperseTransitions: c.disperseTaken,
		FieldState:          state,
		FrameMsMean:         mean,
		FrameMsStd:          std,
		FrameMsP50:          p50,
		FrameMsP95:          p95,
	}

	c.fistEvents = 0
	c.openEvents = 0
	c.moveEvents = 0
	c.formTaken = 0
	c.disperseTaken = 0
	c.frameMs = c.frameMs[:0]
	c.windowStart = time.Now()

	return stats
}
