package gesture

import "gocv.io/x/gocv"

// MockDetector is a test implementation of Detector with scripted results.
// Each Detect call consumes the next queued result; the last one repeats.
type MockDetector struct {
	queue [][]Hand
	err   error
	calls int
}

// NewMockDetector creates an empty mock. With nothing queued, Detect reports
// no hands.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// Queue appends a detection result to the script.
func (m *MockDetector) Queue(hands ...Hand) {
	m.queue = append(m.queue, hands)
}

// SetError makes Detect return err.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has run.
func (m *MockDetector) Calls() int { return m.calls }

// Detect returns the next scripted result.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) == 0 {
		return nil, nil
	}
	hands := m.queue[0]
	if len(m.queue) > 1 {
		m.queue = m.queue[1:]
	}
	return hands, nil
}

// Close is a no-op for the mock.
func (m *MockDetector) Close() error { return nil }

// FistHand returns a preset Hand with all fingertips curled near the wrist.
func FistHand() Hand {
	h := Hand{Score: 0.95}
	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.7}
	for _, tip := range fingertips {
		h.Points[tip] = Point3D{X: 0.52, Y: 0.62}
	}
	return h
}

// OpenHand returns a preset Hand with fingertips spread far from the wrist.
func OpenHand() Hand {
	h := Hand{Score: 0.95}
	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}
	h.Points[ThumbTip] = Point3D{X: 0.72, Y: 0.55}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.30}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.35}
	h.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.45}
	return h
}

// HandAt returns an open hand shifted so the wrist sits at x.
func HandAt(x float64) Hand {
	h := OpenHand()
	dx := x - h.Points[Wrist].X
	for i := range h.Points {
		h.Points[i].X += dx
	}
	return h
}
