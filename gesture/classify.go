package gesture

// Pose is a discrete hand pose.
type Pose uint8

const (
	// PoseNone means no hand, low confidence, or a spread inside the dead
	// zone between the fist and open thresholds.
	PoseNone Pose = iota
	PoseFist
	PoseOpen
)

// String returns the pose name.
func (p Pose) String() string {
	switch p {
	case PoseFist:
		return "fist"
	case PoseOpen:
		return "open"
	default:
		return "none"
	}
}

// Classifier maps hand landmarks to poses using fixed spread thresholds.
// Spreads between the two thresholds deliberately classify as PoseNone: the
// dead zone keeps a hand mid-transition from flickering between commands.
type Classifier struct {
	fistThreshold float64
	openThreshold float64
	minScore      float64
}

// NewClassifier creates a classifier. fist and open are spread thresholds in
// frame-normalized units; minScore is the minimum detection confidence.
func NewClassifier(fist, open, minScore float64) *Classifier {
	return &Classifier{
		fistThreshold: fist,
		openThreshold: open,
		minScore:      minScore,
	}
}

// Classify returns the pose for a detected hand.
func (c *Classifier) Classify(h *Hand) Pose {
	if h == nil || h.Score < c.minScore {
		return PoseNone
	}

	spread := h.Spread()
	switch {
	case spread < c.fistThreshold:
		return PoseFist
	case spread > c.openThreshold:
		return PoseOpen
	default:
		return PoseNone
	}
}

// PalmX returns the horizontal hand position for move events, clamped to
// [0, 1]. Landmarks are already frame-normalized, so this is just the wrist
// x with a defensive clamp.
func PalmX(h *Hand) float64 {
	x := h.Points[Wrist].X
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
