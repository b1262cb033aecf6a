// Package renderer provides the raylib draw passes for the particle field
// and its decorations.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sapling/field"
)

// TreeRenderer draws the particle field. Must be called inside a
// BeginMode3D block; the field's own rotation is applied via a matrix push
// so particle positions stay in field space.
type TreeRenderer struct{}

// NewTreeRenderer creates a new field renderer.
func NewTreeRenderer() *TreeRenderer {
	return &TreeRenderer{}
}

// Draw renders every particle as a small camera-independent cube. elapsed
// drives a slow shimmer on particle brightness; it has no effect on
// positions.
func (r *TreeRenderer) Draw(f *field.Field, angle float32, elapsed float64) {
	positions := f.Positions()
	colors := f.Colors()
	sizes := f.Sizes()
	opacities := f.Opacities()

	rl.PushMatrix()
	rl.Rotatef(angle*180/math.Pi, 0, 1, 0)

	for i := range positions {
		p := &positions[i]

		// Per-particle shimmer phased by index so the field twinkles
		// instead of pulsing in lockstep
		pulse := math.Sin(elapsed*1.7+float64(i)*0.91)*0.15 + 0.85
		a := uint8(float64(opacities[i]) * pulse * 255)

		c := colors[i]
		size := sizes[i]
		rl.DrawCubeV(
			rl.Vector3{X: p.X, Y: p.Y, Z: p.Z},
			rl.Vector3{X: size, Y: size, Z: size},
			rl.Color{R: c.R, G: c.G, B: c.B, A: a},
		)
	}

	rl.PopMatrix()
}
