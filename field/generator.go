package field

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Region identifies which part of the tree silhouette a particle belongs to.
// The assignment is a pure function of the particle index and never changes.
type Region uint8

const (
	RegionTrunk Region = iota
	RegionRoot
	RegionLeaves
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionTrunk:
		return "trunk"
	case RegionRoot:
		return "root"
	default:
		return "leaves"
	}
}

// TreeParams holds the tree silhouette dimensions.
type TreeParams struct {
	TrunkBand    float64 // Index fraction assigned to the trunk
	RootBand     float64 // Additional index fraction assigned to roots
	TrunkHeight  float32 // Vertical extent of the trunk
	TrunkOffset  float32 // Downward shift of the trunk base
	TrunkRadius  float32 // Radius at the trunk base
	RootRadius   float32 // Outer radius of the root annulus
	CanopyRadius float32 // Leaf shell radius before ellipsoid scaling
	CanopyLift   float32 // Upward shift of the leaf shell
}

// Ellipsoid axis multipliers applied to the leaf shell. The canopy is wider
// than it is tall.
const (
	canopyScaleX = 1.15
	canopyScaleY = 0.95
	canopyScaleZ = 1.15
)

// Generator produces tree-shaped particle positions. The index space is
// partitioned into contiguous bands (trunk, roots, leaves); each band samples
// from its own distribution. Positions are re-randomized on every Sample call
// so each formation traces the same silhouette with a fresh point layout,
// while the band assignment stays fixed per index.
type Generator struct {
	rng      *rand.Rand
	tree     TreeParams
	count    int
	trunkEnd int
	rootEnd  int
	noise    *perlin.Perlin
}

// NewGenerator creates a generator for count particles.
func NewGenerator(count int, tree TreeParams, rng *rand.Rand) *Generator {
	return &Generator{
		rng:      rng,
		tree:     tree,
		count:    count,
		trunkEnd: int(float64(count) * tree.TrunkBand),
		rootEnd:  int(float64(count) * (tree.TrunkBand + tree.RootBand)),
		noise:    perlin.NewPerlin(2, 2, 3, rng.Int63()),
	}
}

// RegionFor returns the band the given index belongs to.
func (g *Generator) RegionFor(i int) Region {
	switch {
	case i < g.trunkEnd:
		return RegionTrunk
	case i < g.rootEnd:
		return RegionRoot
	default:
		return RegionLeaves
	}
}

// Sample draws a fresh position for particle i within its region.
func (g *Generator) Sample(i int) Vec3 {
	switch g.RegionFor(i) {
	case RegionTrunk:
		return g.sampleTrunk()
	case RegionRoot:
		return g.sampleRoot()
	default:
		return g.sampleLeaves()
	}
}

// sampleTrunk places a point on a vertical cylinder whose radius shrinks
// linearly with height: wide base, narrow top.
func (g *Generator) sampleTrunk() Vec3 {
	t := g.tree
	h := g.rng.Float32() * t.TrunkHeight
	taper := 1 - h/(t.TrunkHeight*1.15)
	r := t.TrunkRadius*taper + 0.05

	theta := g.rng.Float64() * 2 * math.Pi
	jx := (g.rng.Float32() - 0.5) * 0.08
	jz := (g.rng.Float32() - 0.5) * 0.08

	return Vec3{
		X: r*float32(math.Cos(theta)) + jx,
		Y: h - t.TrunkOffset,
		Z: r*float32(math.Sin(theta)) + jz,
	}
}

// sampleRoot places a point on an annulus at the trunk base, jitter spread
// across the radius range.
func (g *Generator) sampleRoot() Vec3 {
	t := g.tree
	inner := t.TrunkRadius * 0.8
	r := inner + g.rng.Float32()*(t.RootRadius-inner)
	theta := g.rng.Float64() * 2 * math.Pi

	return Vec3{
		X: r * float32(math.Cos(theta)),
		Y: -t.TrunkOffset + (g.rng.Float32()-0.5)*0.25,
		Z: r * float32(math.Sin(theta)),
	}
}

// sampleLeaves places a point on a slightly perturbed sphere shell, lifted
// upward and stretched into an ellipsoid. Uniform sphere sampling: azimuth
// uniform, polar angle via arccos so points do not cluster at the poles.
func (g *Generator) sampleLeaves() Vec3 {
	t := g.tree
	theta := g.rng.Float64() * 2 * math.Pi
	phi := math.Acos(g.rng.Float64()*2 - 1)

	// Shell with radial perturbation so leaves are not a hard surface
	r := float64(t.CanopyRadius) * (0.85 + g.rng.Float64()*0.3)

	sinPhi := math.Sin(phi)
	x := r * sinPhi * math.Cos(theta)
	y := r * math.Cos(phi)
	z := r * sinPhi * math.Sin(theta)

	return Vec3{
		X: float32(x) * canopyScaleX,
		Y: float32(y)*canopyScaleY + t.CanopyLift,
		Z: float32(z) * canopyScaleZ,
	}
}

// ColorFor returns the fixed color for particle i. Trunk and roots get bark
// tones, leaves a green-to-blossom gradient. Perlin noise over the index
// gives neighboring particles correlated variation instead of white noise.
func (g *Generator) ColorFor(i int) RGB {
	n := g.noise.Noise1D(float64(i) * 0.002) // [-1, 1]
	v := (n + 1) / 2

	switch g.RegionFor(i) {
	case RegionTrunk:
		return RGB{
			R: uint8(100 + v*40),
			G: uint8(62 + v*24),
			B: uint8(32 + v*14),
		}
	case RegionRoot:
		return RGB{
			R: uint8(72 + v*28),
			G: uint8(46 + v*18),
			B: uint8(26 + v*10),
		}
	default:
		// Blend from deep green toward blossom pink across the noise range
		return RGB{
			R: uint8(60 + v*180),
			G: uint8(160 + v*40),
			B: uint8(80 + v*90),
		}
	}
}

// SizeFor returns the fixed render size for particle i. Leaves are finer
// than bark points.
func (g *Generator) SizeFor(i int) float32 {
	base := float32(0.035)
	if g.RegionFor(i) == RegionLeaves {
		base = 0.028
	}
	return base * (0.8 + g.rng.Float32()*0.5)
}
