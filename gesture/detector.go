package gesture

import "gocv.io/x/gocv"

// Detector analyzes a video frame and returns detected hands.
type Detector interface {
	// Detect returns the hands found in the frame, or an empty slice if
	// none are visible.
	Detect(frame *gocv.Mat) ([]Hand, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds detector construction options.
type Config struct {
	// ModelPath is the ONNX hand landmark model file.
	ModelPath string

	// MinScore is the minimum detection confidence (0.0-1.0).
	MinScore float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ModelPath: "models/hand_landmark.onnx",
		MinScore:  0.5,
	}
}
