package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sapling/effects"
)

// StreakRenderer draws the decorative streaks as fading trail lines with
// additive blending. Must be called inside a BeginMode3D block.
type StreakRenderer struct {
	segments int // Trail subdivisions per streak
}

// NewStreakRenderer creates a new streak renderer.
func NewStreakRenderer() *StreakRenderer {
	return &StreakRenderer{segments: 6}
}

// Draw renders every streak head-to-tail, alpha falling off quadratically
// along the trail.
func (r *StreakRenderer) Draw(views []effects.StreakView) {
	rl.BeginBlendMode(rl.BlendAdditive)

	for i := range views {
		v := &views[i]

		dx := (v.Tail.X - v.Head.X) / float32(r.segments)
		dy := (v.Tail.Y - v.Head.Y) / float32(r.segments)
		dz := (v.Tail.Z - v.Head.Z) / float32(r.segments)

		for s := 0; s < r.segments; s++ {
			fade := 1 - float32(s)/float32(r.segments)
			fade *= fade

			alpha := fade * 200
			if alpha < 2 {
				continue
			}

			start := rl.Vector3{
				X: v.Head.X + dx*float32(s),
				Y: v.Head.Y + dy*float32(s),
				Z: v.Head.Z + dz*float32(s),
			}
			end := rl.Vector3{
				X: start.X + dx,
				Y: start.Y + dy,
				Z: start.Z + dz,
			}

			rl.DrawLine3D(start, end, rl.Color{R: v.R, G: v.G, B: v.B, A: uint8(alpha)})
		}
	}

	rl.EndBlendMode()
}
