package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sapling/telemetry"
	"github.com/pthm-cable/sapling/ui"
)

// Draw renders one frame. The field core only mutates in-memory buffers; the
// draw pass here is where they reach the GPU.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()

	elapsed := g.field.Elapsed()
	g.background.Draw(elapsed)

	// Positions changed during Update; raylib re-submits vertex data on
	// every draw call, so consuming the flag is all the upload there is
	g.field.ConsumeDirty()

	rl.BeginMode3D(g.cam)
	g.treeRenderer.Draw(g.field, g.field.Angle(), elapsed)
	if g.showStreaks {
		g.streakRenderer.Draw(g.streaks.Snapshot())
	}
	rl.EndMode3D()

	g.hud.Draw(ui.HUDData{
		Title:         "Sapling",
		ParticleCount: g.field.Count(),
		StreakCount:   g.streaks.Count(),
		FieldState:    g.field.State().String(),
		Frame:         g.frame,
		FPS:           rl.GetFPS(),
		GestureStatus: g.gestureStatus,
		GestureError:  g.gestureErr,
		LastEvent:     g.lastEvent,
		ScreenHeight:  int32(rl.GetScreenHeight()),
	})
	g.hud.DrawControls(int32(rl.GetScreenHeight()),
		"F form | D disperse | arrows spin | S streaks | T panel | F11 fullscreen")

	if g.showPanel {
		values := g.panel.Draw(ui.PanelValues{
			BlendAlpha:   g.field.BlendAlpha(),
			RotationGain: g.field.RotationGain(),
			ShowStreaks:  g.showStreaks,
		})
		g.field.SetBlendAlpha(values.BlendAlpha)
		g.field.SetRotationGain(values.RotationGain)
		g.showStreaks = values.ShowStreaks
	}

	rl.EndDrawing()

	g.perf.EndFrame()
}
