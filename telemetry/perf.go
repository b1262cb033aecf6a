package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame of the render loop.
const (
	PhaseEvents  = "events"
	PhaseField   = "field"
	PhaseStreaks = "streaks"
	PhaseDraw    = "draw"
)

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks per-phase frame timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, closing out the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated frame timing over the window.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
	FPS      float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total, minF, maxF time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if i == 0 || s.FrameDuration < minF {
			minF = s.FrameDuration
		}
		if s.FrameDuration > maxF {
			maxF = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var fps float64
	if avg > 0 {
		fps = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrame: avg,
		MinFrame: minF,
		MaxFrame: maxF,
		PhaseAvg: phaseAvg,
		PhasePct: phasePct,
		FPS:      fps,
	}
}

// LogStats emits the stats via slog.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrame.Microseconds(),
		"min_frame_us", s.MinFrame.Microseconds(),
		"max_frame_us", s.MaxFrame.Microseconds(),
		"fps", int(s.FPS),
	}
	for phase, pct := range s.PhasePct {
		attrs = append(attrs, "pct_"+phase, pct)
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is the flat CSV record for one perf window.
type PerfStatsCSV struct {
	WindowEndFrame int64   `csv:"window_end"`
	AvgFrameUs     int64   `csv:"avg_frame_us"`
	MinFrameUs     int64   `csv:"min_frame_us"`
	MaxFrameUs     int64   `csv:"max_frame_us"`
	FPS            float64 `csv:"fps"`
	EventsPct      float64 `csv:"events_pct"`
	FieldPct       float64 `csv:"field_pct"`
	StreaksPct     float64 `csv:"streaks_pct"`
	DrawPct        float64 `csv:"draw_pct"`
}

// ToCSV flattens the stats for CSV output.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEndFrame: windowEnd,
		AvgFrameUs:     s.AvgFrame.Microseconds(),
		MinFrameUs:     s.MinFrame.Microseconds(),
		MaxFrameUs:     s.MaxFrame.Microseconds(),
		FPS:            s.FPS,
		EventsPct:      s.PhasePct[PhaseEvents],
		FieldPct:       s.PhasePct[PhaseField],
		StreaksPct:     s.PhasePct[PhaseStreaks],
		DrawPct:        s.PhasePct[PhaseDraw],
	}
}
