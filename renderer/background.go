package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Background draws the night-sky gradient behind the 3D scene.
type Background struct {
	width  int32
	height int32
}

// NewBackground creates a background for the given screen size.
func NewBackground(width, height int32) *Background {
	return &Background{width: width, height: height}
}

// Resize updates the screen dimensions.
func (b *Background) Resize(width, height int32) {
	b.width = width
	b.height = height
}

// Draw fills the frame with a vertical gradient plus a slow-breathing
// horizon glow driven by elapsed time.
func (b *Background) Draw(elapsed float64) {
	top := rl.Color{R: 8, G: 8, B: 24, A: 255}
	bottom := rl.Color{R: 24, G: 16, B: 48, A: 255}
	rl.DrawRectangleGradientV(0, 0, b.width, b.height, top, bottom)

	// Horizon glow breathing on a long period
	glow := float32(math.Sin(elapsed*0.4)*0.5+0.5)*30 + 20
	glowColor := rl.Color{R: 60, G: 40, B: 90, A: uint8(glow)}
	rl.DrawRectangleGradientV(0, b.height*2/3, b.width, b.height/3,
		rl.Color{R: 0, G: 0, B: 0, A: 0}, glowColor)
}
