// Package ui renders the heads-up display and the tuning panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the HUD needs for one frame.
type HUDData struct {
	Title         string
	ParticleCount int
	StreakCount   int
	FieldState    string
	Frame         int64
	FPS           int32
	GestureStatus string // "camera ok", or the one-shot init failure message
	GestureError  bool
	LastEvent     string
	ScreenHeight  int32
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Streaks: %d | State: %s", data.ParticleCount, data.StreakCount, data.FieldState),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %d | Last event: %s", data.Frame, data.FPS, data.LastEvent),
		10, 55, 16, rl.LightGray,
	)

	statusColor := rl.Green
	if data.GestureError {
		statusColor = rl.Red
	}
	rl.DrawText(data.GestureStatus, 10, 75, 16, statusColor)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
