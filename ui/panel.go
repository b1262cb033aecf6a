package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PanelValues carries the tunables the panel edits. The game applies changed
// values back to the field after Draw.
type PanelValues struct {
	BlendAlpha   float32
	RotationGain float32
	ShowStreaks  bool
}

// Panel is a small raygui tuning panel, toggled from the keyboard.
type Panel struct {
	x, y float32
}

// NewPanel creates a panel anchored at the top-right of the screen.
func NewPanel(screenWidth int32) *Panel {
	return &Panel{x: float32(screenWidth) - 230, y: 10}
}

// Resize re-anchors the panel after a window resize.
func (p *Panel) Resize(screenWidth int32) {
	p.x = float32(screenWidth) - 230
}

// Draw renders the panel and returns the possibly-edited values.
func (p *Panel) Draw(v PanelValues) PanelValues {
	x, y := p.x, p.y

	rl.DrawRectangle(int32(x)-10, int32(y)-10, 230, 140, rl.Color{R: 0, G: 0, B: 0, A: 140})
	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.White)
	y += 26

	rl.DrawText("Blend alpha", int32(x), int32(y), 12, rl.LightGray)
	y += 16
	v.BlendAlpha = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: 160, Height: 16},
		"", fmt.Sprintf("%.3f", v.BlendAlpha),
		v.BlendAlpha, 0.01, 0.25,
	)
	y += 24

	rl.DrawText("Rotation gain", int32(x), int32(y), 12, rl.LightGray)
	y += 16
	v.RotationGain = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: 160, Height: 16},
		"", fmt.Sprintf("%.2f", v.RotationGain),
		v.RotationGain, 0.02, 0.5,
	)
	y += 24

	v.ShowStreaks = gui.CheckBox(
		rl.Rectangle{X: x, Y: y, Width: 16, Height: 16},
		"Streaks", v.ShowStreaks,
	)

	return v
}
