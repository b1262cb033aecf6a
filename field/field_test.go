package field

import (
	"math"
	"math/rand"
	"testing"
)

func testParams(count int) Params {
	return Params{
		Count:           count,
		BlendAlpha:      0.06,
		RotationGain:    0.12,
		RotationDamping: 0.96,
		DisperseRadius:  6.0,
		Tree:            testTreeParams(),
	}
}

func testTreeParams() TreeParams {
	return TreeParams{
		TrunkBand:    0.25,
		RootBand:     0.10,
		TrunkHeight:  4.0,
		TrunkOffset:  2.5,
		TrunkRadius:  0.35,
		RootRadius:   1.1,
		CanopyRadius: 1.8,
		CanopyLift:   0.8,
	}
}

func newTestField(t *testing.T, count int, seed int64) *Field {
	t.Helper()
	return New(testParams(count), rand.New(rand.NewSource(seed)))
}

func TestNewFieldInvariants(t *testing.T) {
	f := newTestField(t, 1000, 1)

	if f.Count() != 1000 {
		t.Fatalf("Count() = %d, want 1000", f.Count())
	}
	if got := len(f.Positions()); got != 1000 {
		t.Errorf("len(Positions()) = %d, want 1000", got)
	}
	if got := len(f.Targets()); got != 1000 {
		t.Errorf("len(Targets()) = %d, want 1000", got)
	}
	if got := len(f.Colors()); got != 1000 {
		t.Errorf("len(Colors()) = %d, want 1000", got)
	}
	if f.State() != Dispersed {
		t.Errorf("initial state = %v, want dispersed", f.State())
	}

	// Current and target coincide at construction so the field starts still
	pos, tgt := f.Positions(), f.Targets()
	for i := range pos {
		if pos[i] != tgt[i] {
			t.Fatalf("particle %d: current %v != target %v at construction", i, pos[i], tgt[i])
		}
	}
}

func TestFormIdempotent(t *testing.T) {
	f := newTestField(t, 500, 2)

	if !f.Form() {
		t.Fatal("first Form() from dispersed should transition")
	}
	if f.State() != Formed {
		t.Fatalf("state = %v after Form, want formed", f.State())
	}

	// Second call is a no-op and must not touch targets
	before := make([]Vec3, 500)
	copy(before, f.Targets())

	if f.Form() {
		t.Error("second Form() should be a no-op")
	}
	for i, tgt := range f.Targets() {
		if tgt != before[i] {
			t.Fatalf("target %d changed on no-op Form: %v -> %v", i, before[i], tgt)
		}
	}
}

func TestDisperseIdempotent(t *testing.T) {
	f := newTestField(t, 500, 3)

	if f.Disperse() {
		t.Error("Disperse() from dispersed should be a no-op")
	}

	f.Form()
	if !f.Disperse() {
		t.Error("Disperse() from formed should transition")
	}
	if f.State() != Dispersed {
		t.Errorf("state = %v after Disperse, want dispersed", f.State())
	}
}

func TestFormRepublishesFreshTargets(t *testing.T) {
	f := newTestField(t, 500, 4)

	f.Form()
	first := make([]Vec3, 500)
	copy(first, f.Targets())

	f.Disperse()
	f.Form()

	// Same silhouette, freshly sampled layout: essentially every target
	// differs from the previous formation
	changed := 0
	for i, tgt := range f.Targets() {
		if tgt != first[i] {
			changed++
		}
	}
	if changed < 490 {
		t.Errorf("only %d/500 targets changed on re-form, want nearly all", changed)
	}
}

func TestUpdateExponentialBlend(t *testing.T) {
	f := newTestField(t, 4, 5)

	f.Positions()[0] = Vec3{}
	f.Targets()[0] = Vec3{X: 10}

	f.Update(1.0 / 60.0)

	got := f.Positions()[0].X
	if math.Abs(float64(got)-0.6) > 1e-4 {
		t.Errorf("after one update current = %v, want 0.6", got)
	}

	// Monotone approach, never overshooting the target
	prev := got
	for i := 0; i < 500; i++ {
		f.Update(1.0 / 60.0)
		cur := f.Positions()[0].X
		if cur < prev {
			t.Fatalf("update %d: current decreased %v -> %v", i, prev, cur)
		}
		if cur > 10 {
			t.Fatalf("update %d: current %v overshot target 10", i, cur)
		}
		prev = cur
	}
	if prev < 9.9 {
		t.Errorf("after 500 updates current = %v, want near 10", prev)
	}
}

func TestRotateVelocity(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float32
	}{
		{"neutral midpoint", 0.5, 0},
		{"full right", 1.0, 0.06},
		{"full left", 0.0, -0.06},
		{"clamped above", 1.7, 0.06},
		{"clamped below", -0.3, -0.06},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(t, 4, 6)
			f.Rotate(tt.x)
			if got := f.Velocity(); math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("Rotate(%v) velocity = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestRotateOverwritesVelocity(t *testing.T) {
	f := newTestField(t, 4, 7)

	f.Rotate(1.0)
	f.Rotate(1.0)
	f.Rotate(1.0)

	// Velocity is overwritten, not accumulated
	if got := f.Velocity(); math.Abs(float64(got)-0.06) > 1e-6 {
		t.Errorf("velocity after repeated Rotate(1.0) = %v, want 0.06", got)
	}
}

func TestUpdateAppliesAndDampsRotation(t *testing.T) {
	f := newTestField(t, 4, 8)

	f.Rotate(1.0)
	v0 := f.Velocity()

	f.Update(1.0 / 60.0)

	if got := f.Angle(); math.Abs(float64(got-v0)) > 1e-6 {
		t.Errorf("angle after one update = %v, want %v", got, v0)
	}
	if got := f.Velocity(); math.Abs(float64(got-v0*0.96)) > 1e-6 {
		t.Errorf("velocity after one update = %v, want %v", got, v0*0.96)
	}

	// A single move coasts to a stop
	for i := 0; i < 2000; i++ {
		f.Update(1.0 / 60.0)
	}
	if got := f.Velocity(); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("velocity after coasting = %v, want ~0", got)
	}
}

func TestDisperseUniformInVolume(t *testing.T) {
	const n = 8000
	f := newTestField(t, n, 9)

	f.Form()
	f.Disperse()

	// Uniform density in a ball: P(r < R/2) = (1/2)^3 = 1/8, and the
	// outermost fifth of the radius holds 1 - 0.8^3 = 48.8% of the points.
	// A density proportional to r (surface-biased sampling) would put far
	// more mass outside; density independent of r would center-cluster.
	const radius = 6.0
	var inner, outer int
	for _, tgt := range f.Targets() {
		r := math.Sqrt(float64(tgt.X*tgt.X + tgt.Y*tgt.Y + tgt.Z*tgt.Z))
		if r > radius+1e-6 {
			t.Fatalf("target outside disperse radius: r = %v", r)
		}
		if r < radius/2 {
			inner++
		}
		if r > radius*0.8 {
			outer++
		}
	}

	innerFrac := float64(inner) / n
	if innerFrac < 0.10 || innerFrac > 0.15 {
		t.Errorf("fraction within R/2 = %.3f, want ~0.125", innerFrac)
	}
	outerFrac := float64(outer) / n
	if outerFrac < 0.45 || outerFrac > 0.53 {
		t.Errorf("fraction beyond 0.8R = %.3f, want ~0.488", outerFrac)
	}
}

func TestElapsedAccumulates(t *testing.T) {
	f := newTestField(t, 4, 10)

	for i := 0; i < 60; i++ {
		f.Update(1.0 / 60.0)
	}
	if got := f.Elapsed(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("elapsed after 60 frames = %v, want 1.0", got)
	}
}

func TestConsumeDirty(t *testing.T) {
	f := newTestField(t, 4, 11)

	if !f.ConsumeDirty() {
		t.Error("field should be dirty after construction")
	}
	if f.ConsumeDirty() {
		t.Error("dirty flag should clear after consumption")
	}

	f.Update(1.0 / 60.0)
	if !f.ConsumeDirty() {
		t.Error("field should be dirty after Update")
	}
}
