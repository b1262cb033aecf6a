// Package effects implements transient decorative visuals that run alongside
// the particle field without interacting with it.
package effects

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sapling/components"
)

// StreakParams holds the streak pool tuning values.
type StreakParams struct {
	Count       int
	ExitX       float32 // Head x below this respawns the streak
	SpawnXMin   float32
	SpawnXMax   float32
	SpawnSpread float32 // Half-extent of the Y/Z spawn box
	SpeedMin    float32
	SpeedMax    float32
	TrailMin    float32
	TrailMax    float32
}

// StreakView is a flattened streak for rendering and tests.
type StreakView struct {
	Head components.Position
	Tail components.Position
	Size float32
	R    uint8
	G    uint8
	B    uint8
}

// StreakSystem owns a fixed pool of streak entities. Each streak flies on a
// straight line until its head leaves the visible volume, then respawns with
// fresh randomized attributes, independent of all other streaks.
type StreakSystem struct {
	world  *ecs.World
	rng    *rand.Rand
	params StreakParams

	mapper *ecs.Map3[components.Position, components.Velocity, components.Streak]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Streak]
}

// NewStreakSystem creates the pool and spawns params.Count streaks scattered
// through the flight volume so the first frames are already populated.
func NewStreakSystem(params StreakParams, rng *rand.Rand) *StreakSystem {
	world := ecs.NewWorld()

	s := &StreakSystem{
		world:  world,
		rng:    rng,
		params: params,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Streak](world),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Streak](world),
	}

	for i := 0; i < params.Count; i++ {
		pos, vel, st := s.rollStreak()
		// Initial spawn anywhere along the flight path, not just at the edge
		pos.X = params.ExitX + rng.Float32()*(params.SpawnXMax-params.ExitX)
		s.mapper.NewEntity(&pos, &vel, &st)
	}

	return s
}

// Count returns the fixed pool size.
func (s *StreakSystem) Count() int { return s.params.Count }

// Update advances every streak by dt seconds and respawns the ones whose
// heads crossed the exit threshold.
func (s *StreakSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, st := query.Get()

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		pos.Z += vel.Z * dt

		if pos.X < s.params.ExitX {
			np, nv, ns := s.rollStreak()
			*pos = np
			*vel = nv
			*st = ns
		}
	}
}

// Snapshot copies the pool into plain structs. The tail is derived from the
// head, velocity, and trail length at read time.
func (s *StreakSystem) Snapshot() []StreakView {
	views := make([]StreakView, 0, s.params.Count)

	query := s.filter.Query()
	for query.Next() {
		pos, vel, st := query.Get()
		views = append(views, StreakView{
			Head: *pos,
			Tail: components.Position{
				X: pos.X - vel.X*st.Trail,
				Y: pos.Y - vel.Y*st.Trail,
				Z: pos.Z - vel.Z*st.Trail,
			},
			Size: st.Size,
			R:    st.R,
			G:    st.G,
			B:    st.B,
		})
	}

	return views
}

// rollStreak draws a fresh spawn position, velocity, trail, and color.
// Streaks fly toward negative X with a slight downward drift.
func (s *StreakSystem) rollStreak() (components.Position, components.Velocity, components.Streak) {
	p := s.params

	pos := components.Position{
		X: p.SpawnXMin + s.rng.Float32()*(p.SpawnXMax-p.SpawnXMin),
		Y: (s.rng.Float32() - 0.5) * 2 * p.SpawnSpread,
		Z: (s.rng.Float32() - 0.5) * 2 * p.SpawnSpread,
	}

	speed := p.SpeedMin + s.rng.Float32()*(p.SpeedMax-p.SpeedMin)
	vel := components.Velocity{
		X: -speed,
		Y: -speed * (0.1 + s.rng.Float32()*0.2),
		Z: (s.rng.Float32() - 0.5) * speed * 0.1,
	}

	// Cool white-blue palette
	warm := s.rng.Float32()
	st := components.Streak{
		Trail: p.TrailMin + s.rng.Float32()*(p.TrailMax-p.TrailMin),
		Size:  0.02 + s.rng.Float32()*0.03,
		R:     uint8(180 + warm*60),
		G:     uint8(200 + warm*40),
		B:     255,
	}

	return pos, vel, st
}
