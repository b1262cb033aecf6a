// Package gesture turns camera frames into discrete hand-gesture events for
// the particle field: fist, open palm, and horizontal hand movement.
package gesture

import "math"

// Hand landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// fingertips are the landmark indices averaged by the pose heuristic.
var fingertips = [5]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// Point3D is a landmark position. X and Y are normalized to the frame
// ([0,1], origin top-left); Z is model-relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand holds one detected hand: 21 landmarks plus a detection confidence.
type Hand struct {
	Points [NumLandmarks]Point3D `json:"points"`
	Score  float64               `json:"score"`
}

// distance3D is the Euclidean distance between two landmarks.
func distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Spread returns the mean fingertip-to-wrist distance in frame-normalized
// coordinates. A curled hand has a small spread, an open palm a large one.
func (h *Hand) Spread() float64 {
	wrist := h.Points[Wrist]
	var sum float64
	for _, tip := range fingertips {
		sum += distance3D(h.Points[tip], wrist)
	}
	return sum / float64(len(fingertips))
}
