package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes the keyboard fallback and view toggles. The field
// commands here are the same idempotent entry points the recognizer drives.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyF) {
		if g.field.Form() {
			g.collector.RecordFormTransition()
		}
		g.lastEvent = "fist (key)"
	}
	if rl.IsKeyPressed(rl.KeyD) {
		if g.field.Disperse() {
			g.collector.RecordDisperseTransition()
		}
		g.lastEvent = "open (key)"
	}

	// Arrows stand in for move events at the extremes of the hand range
	if rl.IsKeyDown(rl.KeyLeft) {
		g.field.Rotate(0.0)
		g.lastEvent = "move (key)"
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.field.Rotate(1.0)
		g.lastEvent = "move (key)"
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.showStreaks = !g.showStreaks
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.showPanel = !g.showPanel
	}
}

// handleResize propagates window resizes to the background and panel.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	g.background.Resize(w, h)
	g.panel.Resize(w)
}
