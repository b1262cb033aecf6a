// Package game wires the particle field, streaks, gesture recognizer, and
// renderers into the host frame loop.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sapling/capture"
	"github.com/pthm-cable/sapling/config"
	"github.com/pthm-cable/sapling/effects"
	"github.com/pthm-cable/sapling/field"
	"github.com/pthm-cable/sapling/gesture"
	"github.com/pthm-cable/sapling/renderer"
	"github.com/pthm-cable/sapling/telemetry"
	"github.com/pthm-cable/sapling/ui"
)

// Options holds the runtime options from the CLI.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	CameraDevice   int
	NoCamera       bool
}

// Game holds the complete host state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	field   *field.Field
	streaks *effects.StreakSystem

	// Recognizer is nil when the camera is disabled or failed to start;
	// the keyboard fallback still drives the field.
	recognizer    *gesture.Recognizer
	gestureStatus string
	gestureErr    bool
	lastEvent     string

	// Rendering (unused in headless mode)
	cam            rl.Camera3D
	background     *renderer.Background
	treeRenderer   *renderer.TreeRenderer
	streakRenderer *renderer.StreakRenderer
	hud            *ui.HUD
	panel          *ui.Panel
	showPanel      bool
	showStreaks    bool

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	frame    int64
	headless bool
}

// NewGame creates the host from the loaded configuration.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	f := field.New(field.Params{
		Count:           cfg.Field.ParticleCount,
		BlendAlpha:      float32(cfg.Field.BlendAlpha),
		RotationGain:    float32(cfg.Field.RotationGain),
		RotationDamping: float32(cfg.Field.RotationDamping),
		DisperseRadius:  float32(cfg.Field.DisperseRadius),
		Tree: field.TreeParams{
			TrunkBand:    cfg.Tree.TrunkBand,
			RootBand:     cfg.Tree.RootBand,
			TrunkHeight:  float32(cfg.Tree.TrunkHeight),
			TrunkOffset:  float32(cfg.Tree.TrunkOffset),
			TrunkRadius:  float32(cfg.Tree.TrunkRadius),
			RootRadius:   float32(cfg.Tree.RootRadius),
			CanopyRadius: float32(cfg.Tree.CanopyRadius),
			CanopyLift:   float32(cfg.Tree.CanopyLift),
		},
	}, rng)

	streaks := effects.NewStreakSystem(effects.StreakParams{
		Count:       cfg.Streaks.Count,
		ExitX:       float32(cfg.Streaks.ExitX),
		SpawnXMin:   float32(cfg.Streaks.SpawnXMin),
		SpawnXMax:   float32(cfg.Streaks.SpawnXMax),
		SpawnSpread: float32(cfg.Streaks.SpawnSpread),
		SpeedMin:    float32(cfg.Streaks.SpeedMin),
		SpeedMax:    float32(cfg.Streaks.SpeedMax),
		TrailMin:    float32(cfg.Streaks.TrailMin),
		TrailMax:    float32(cfg.Streaks.TrailMax),
	}, rng)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("creating output manager", "error", err)
		output = nil
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("writing config snapshot", "error", err)
	}

	g := &Game{
		cfg:         cfg,
		rng:         rng,
		field:       f,
		streaks:     streaks,
		collector:   telemetry.NewCollector(statsWindow),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:      output,
		logStats:    opts.LogStats,
		showStreaks: true,
		headless:    opts.Headless,
		lastEvent:   "none",
	}

	g.startRecognizer(opts)

	if !opts.Headless {
		g.cam = rl.Camera3D{
			Position:   rl.Vector3{X: 0, Y: 1.5, Z: 9},
			Target:     rl.Vector3{X: 0, Y: 0.5, Z: 0},
			Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		}
		g.background = renderer.NewBackground(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
		g.treeRenderer = renderer.NewTreeRenderer()
		g.streakRenderer = renderer.NewStreakRenderer()
		g.hud = ui.NewHUD()
		g.panel = ui.NewPanel(int32(cfg.Screen.Width))
	}

	return g
}

// startRecognizer opens the camera and landmark model. A failure is
// surfaced once on the HUD and in the log; there is no retry, and the game
// runs on with keyboard control only.
func (g *Game) startRecognizer(opts Options) {
	if opts.NoCamera {
		g.gestureStatus = "camera disabled, keyboard control"
		return
	}

	gcfg := g.cfg.Gesture
	detector, err := gesture.NewONNXDetector(gesture.Config{
		ModelPath: gcfg.ModelPath,
		MinScore:  gcfg.MinScore,
	})
	if err != nil {
		slog.Error("gesture recognition unavailable", "error", err)
		g.gestureStatus = "gesture recognition unavailable: " + err.Error()
		g.gestureErr = true
		return
	}

	device := gcfg.Device
	if opts.CameraDevice >= 0 {
		device = opts.CameraDevice
	}

	rec := gesture.NewRecognizer(gesture.RecognizerConfig{
		IdleFPS:       gcfg.IdleFPS,
		ActiveFPS:     gcfg.ActiveFPS,
		IdleTimeout:   time.Duration(gcfg.IdleTimeoutMs) * time.Millisecond,
		MotionPercent: gcfg.MotionPercent,
		FistThreshold: gcfg.FistThreshold,
		OpenThreshold: gcfg.OpenThreshold,
		MinScore:      gcfg.MinScore,
	}, capture.NewCamera(device), detector)

	if err := rec.Start(); err != nil {
		slog.Error("gesture recognition unavailable", "error", err)
		g.gestureStatus = "gesture recognition unavailable: " + err.Error()
		g.gestureErr = true
		detector.Close()
		return
	}

	g.recognizer = rec
	g.gestureStatus = "camera ok: fist forms, open palm disperses, move to spin"
}

// Frame returns the number of completed update steps.
func (g *Game) Frame() int64 { return g.frame }

// Update advances one frame in graphics mode: input, pending gesture events,
// field and streak integration, telemetry.
func (g *Game) Update() {
	g.perf.StartFrame()

	g.handleInput()

	g.perf.StartPhase(telemetry.PhaseEvents)
	g.drainEvents()

	dt := float64(rl.GetFrameTime())
	if dt <= 0 {
		dt = g.cfg.Derived.DT
	}
	g.step(dt)
}

// UpdateHeadless advances one fixed-dt frame without any raylib calls.
func (g *Game) UpdateHeadless() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseEvents)
	g.drainEvents()

	g.step(g.cfg.Derived.DT)

	// No draw phase in headless mode; close the sample here
	g.perf.EndFrame()
}

// step runs the per-frame integration shared by both modes.
func (g *Game) step(dt float64) {
	g.perf.StartPhase(telemetry.PhaseField)
	g.field.Update(dt)

	g.perf.StartPhase(telemetry.PhaseStreaks)
	g.streaks.Update(float32(dt))

	g.frame++
	g.collector.RecordFrame(time.Duration(dt * float64(time.Second)))
	g.flushTelemetry()
}

// drainEvents applies every pending gesture event to the field. Commands
// only touch target buffers and rotation velocity; nothing redraws here.
func (g *Game) drainEvents() {
	if g.recognizer == nil {
		return
	}

	for {
		select {
		case ev := <-g.recognizer.Events():
			g.collector.RecordEvent(ev.Kind)
			g.lastEvent = ev.Kind.String()

			switch ev.Kind {
			case gesture.EventFist:
				if g.field.Form() {
					g.collector.RecordFormTransition()
				}
			case gesture.EventOpen:
				if g.field.Disperse() {
					g.collector.RecordDisperseTransition()
				}
			case gesture.EventMove:
				g.field.Rotate(ev.X)
			}
		default:
			return
		}
	}
}

// flushTelemetry publishes window stats when the window elapses.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	var dropped int64
	if g.recognizer != nil {
		dropped = g.recognizer.Dropped()
	}

	stats := g.collector.Flush(g.frame, dropped, g.field.State().String())
	perfStats := g.perf.Stats()

	if g.logStats {
		slog.Info("window",
			"frame", stats.WindowEndFrame,
			"state", stats.FieldState,
			"fist", stats.FistEvents,
			"open", stats.OpenEvents,
			"move", stats.MoveEvents,
			"dropped", stats.DroppedEvents,
			"frame_ms_mean", stats.FrameMsMean,
			"frame_ms_p95", stats.FrameMsP95,
		)
		perfStats.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Warn("writing telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, g.frame); err != nil {
		slog.Warn("writing perf", "error", err)
	}
}

// Unload stops the recognizer and closes the output files.
func (g *Game) Unload() {
	if g.recognizer != nil {
		g.recognizer.Stop()
	}
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}
