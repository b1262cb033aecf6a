// Package field implements the gesture-driven particle set: a fixed point
// cloud with independent current and target position buffers, discrete
// formed/dispersed states, and a per-frame integrator that eases current
// positions toward their targets.
package field

import (
	"math"
	"math/rand"
	"sync"
)

// State identifies the field's discrete shape state.
type State uint8

const (
	// Dispersed means targets are scattered through a solid sphere.
	Dispersed State = iota
	// Formed means targets trace the procedural tree silhouette.
	Formed
)

// String returns the state name for logs and the HUD.
func (s State) String() string {
	if s == Formed {
		return "formed"
	}
	return "dispersed"
}

// Vec3 is a point or direction in field space.
type Vec3 struct {
	X, Y, Z float32
}

// RGB is a particle color. Colors are assigned once at construction.
type RGB struct {
	R, G, B uint8
}

// Params holds field construction parameters.
type Params struct {
	Count           int
	BlendAlpha      float32
	RotationGain    float32
	RotationDamping float32
	DisperseRadius  float32
	Tree            TreeParams
}

// Field owns the particle buffers and the shape state machine. Command
// methods (Form, Disperse, Rotate) only touch the target buffer and the
// rotation velocity; Update advances the visible state one frame.
//
// Commands arrive from the recognizer goroutine while Update runs on the
// render loop, so the mutable shared state is guarded by a mutex.
type Field struct {
	mu  sync.Mutex
	rng *rand.Rand
	gen *Generator

	params Params

	current []Vec3
	target  []Vec3
	colors  []RGB
	sizes   []float32
	opacity []float32

	state    State
	angle    float32 // Orientation about the vertical axis, radians
	velocity float32 // Rotation per frame, radians
	elapsed  float64 // Monotonic time accumulator, seconds
	dirty    bool    // Set when buffers changed since the last upload
}

// New creates a field of params.Count particles in the dispersed state, with
// current and target buffers coincident so the first frames are still.
// The rng is the single randomness source; pass a seeded one for
// reproducible layouts.
func New(params Params, rng *rand.Rand) *Field {
	gen := NewGenerator(params.Count, params.Tree, rng)

	f := &Field{
		rng:     rng,
		gen:     gen,
		params:  params,
		current: make([]Vec3, params.Count),
		target:  make([]Vec3, params.Count),
		colors:  make([]RGB, params.Count),
		sizes:   make([]float32, params.Count),
		opacity: make([]float32, params.Count),
		state:   Dispersed,
		dirty:   true,
	}

	for i := 0; i < params.Count; i++ {
		p := f.sampleSphere()
		f.current[i] = p
		f.target[i] = p
		f.colors[i] = gen.ColorFor(i)
		f.sizes[i] = gen.SizeFor(i)
		f.opacity[i] = 0.55 + rng.Float32()*0.45
	}

	return f
}

// Count returns the fixed particle cardinality.
func (f *Field) Count() int { return f.params.Count }

// State returns the current shape state.
func (f *Field) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Form transitions to the formed state, republishing a freshly sampled tree
// target for every particle. The current buffer is never written here;
// convergence happens over subsequent Update calls. Returns false when
// already formed (idempotent no-op).
func (f *Field) Form() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Formed {
		return false
	}
	f.state = Formed

	for i := range f.target {
		f.target[i] = f.gen.Sample(i)
	}
	return true
}

// Disperse transitions to the dispersed state, scattering targets uniformly
// through a solid sphere. Returns false when already dispersed (idempotent
// no-op).
func (f *Field) Disperse() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Dispersed {
		return false
	}
	f.state = Dispersed

	for i := range f.target {
		f.target[i] = f.sampleSphere()
	}
	return true
}

// Rotate sets the rotation velocity from a horizontal hand position
// normalized to [0, 1]. The midpoint is neutral; each call overwrites the
// velocity rather than accumulating. Out-of-range input is clamped, never an
// error.
func (f *Field) Rotate(x float64) {
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.velocity = (float32(x) - 0.5) * f.params.RotationGain
}

// Update advances the field one frame: every coordinate eases toward its
// target by the blend factor, the rotation velocity is applied to the field
// orientation and then damped, and the time accumulator moves forward.
// Call exactly once per render tick.
func (f *Field) Update(dt float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	alpha := f.params.BlendAlpha
	for i := range f.current {
		c := &f.current[i]
		t := &f.target[i]
		c.X += (t.X - c.X) * alpha
		c.Y += (t.Y - c.Y) * alpha
		c.Z += (t.Z - c.Z) * alpha
	}

	f.angle += f.velocity
	f.velocity *= f.params.RotationDamping

	f.elapsed += dt
	f.dirty = true
}

// sampleSphere draws a point uniform-in-volume within the disperse radius:
// cube-root radius, uniform azimuth, polar angle via arccos.
func (f *Field) sampleSphere() Vec3 {
	r := f.params.DisperseRadius * float32(math.Cbrt(f.rng.Float64()))
	theta := f.rng.Float64() * 2 * math.Pi
	phi := math.Acos(f.rng.Float64()*2 - 1)

	sinPhi := math.Sin(phi)
	return Vec3{
		X: r * float32(sinPhi*math.Cos(theta)),
		Y: r * float32(math.Cos(phi)),
		Z: r * float32(sinPhi*math.Sin(theta)),
	}
}

// Positions returns the current position buffer. The renderer reads it
// between Update calls; callers must not mutate or retain it across frames.
func (f *Field) Positions() []Vec3 { return f.current }

// Targets returns the target position buffer. Exposed for tests.
func (f *Field) Targets() []Vec3 { return f.target }

// Colors returns the per-particle color buffer, fixed at construction.
func (f *Field) Colors() []RGB { return f.colors }

// Sizes returns the per-particle size buffer, fixed at construction.
func (f *Field) Sizes() []float32 { return f.sizes }

// Opacities returns the per-particle opacity buffer, fixed at construction.
func (f *Field) Opacities() []float32 { return f.opacity }

// Angle returns the field orientation about the vertical axis in radians.
func (f *Field) Angle() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.angle
}

// Velocity returns the current rotation velocity in radians per frame.
func (f *Field) Velocity() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.velocity
}

// Elapsed returns the accumulated time in seconds, for time-varying shading.
func (f *Field) Elapsed() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.elapsed
}

// BlendAlpha returns the per-frame blend factor.
func (f *Field) BlendAlpha() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.params.BlendAlpha
}

// SetBlendAlpha changes the per-frame blend factor, for live tuning.
func (f *Field) SetBlendAlpha(a float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params.BlendAlpha = a
}

// RotationGain returns the rotation velocity gain.
func (f *Field) RotationGain() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.params.RotationGain
}

// SetRotationGain changes the rotation velocity gain, for live tuning.
func (f *Field) SetRotationGain(k float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params.RotationGain = k
}

// ConsumeDirty reports whether the buffers changed since the last call and
// clears the flag. The host re-uploads GPU buffers when this returns true.
func (f *Field) ConsumeDirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.dirty
	f.dirty = false
	return d
}
