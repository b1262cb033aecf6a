package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)

	stats := p.Stats()
	if stats.AvgFrame != 0 || stats.FPS != 0 {
		t.Errorf("Empty collector stats = %+v, want zeros", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("Empty collector returned nil phase maps")
	}
}

func TestPerfCollectorRecordsPhases(t *testing.T) {
	p := NewPerfCollector(10)

	p.StartFrame()
	p.StartPhase(PhaseField)
	time.Sleep(5 * time.Millisecond)
	p.StartPhase(PhaseDraw)
	time.Sleep(5 * time.Millisecond)
	p.EndFrame()

	stats := p.Stats()
	if stats.AvgFrame < 8*time.Millisecond {
		t.Errorf("AvgFrame = %v, want at least ~10ms", stats.AvgFrame)
	}
	if stats.PhaseAvg[PhaseField] <= 0 {
		t.Errorf("Field phase average = %v, want > 0", stats.PhaseAvg[PhaseField])
	}
	if stats.PhaseAvg[PhaseDraw] <= 0 {
		t.Errorf("Draw phase average = %v, want > 0", stats.PhaseAvg[PhaseDraw])
	}
	if stats.FPS <= 0 {
		t.Errorf("FPS = %v, want > 0", stats.FPS)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	p := NewPerfCollector(3)

	for i := 0; i < 10; i++ {
		p.StartFrame()
		p.EndFrame()
	}

	stats := p.Stats()
	if stats.AvgFrame < 0 {
		t.Errorf("AvgFrame = %v after window wrap, want >= 0", stats.AvgFrame)
	}
	if stats.MaxFrame < stats.MinFrame {
		t.Errorf("MaxFrame %v < MinFrame %v", stats.MaxFrame, stats.MinFrame)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgFrame: 16 * time.Millisecond,
		MinFrame: 12 * time.Millisecond,
		MaxFrame: 22 * time.Millisecond,
		FPS:      62.5,
		PhasePct: map[string]float64{
			PhaseEvents:  1.5,
			PhaseField:   40,
			PhaseStreaks: 8.5,
			PhaseDraw:    50,
		},
	}

	row := stats.ToCSV(4200)
	if row.WindowEndFrame != 4200 {
		t.Errorf("WindowEndFrame = %d, want 4200", row.WindowEndFrame)
	}
	if row.AvgFrameUs != 16000 {
		t.Errorf("AvgFrameUs = %d, want 16000", row.AvgFrameUs)
	}
	if row.FieldPct != 40 || row.DrawPct != 50 {
		t.Errorf("Phase percentages = (%v, %v), want (40, 50)", row.FieldPct, row.DrawPct)
	}
}
