package gesture

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Model input and output layout for the hand landmark network. The model
// takes a square RGB crop and emits 21 landmarks in input-pixel units plus a
// hand-presence score.
const (
	landmarkInputSize = 224
	landmarkOutLayer  = "ld_21_3d"
	handFlagOutLayer  = "output_handflag"
)

// ONNXDetector runs a hand landmark model through the GoCV DNN module.
// It detects at most one hand per frame, which is all the recognizer needs.
type ONNXDetector struct {
	net      gocv.Net
	minScore float64
	mu       sync.Mutex
}

// NewONNXDetector loads the landmark model from cfg.ModelPath.
func NewONNXDetector(cfg Config) (*ONNXDetector, error) {
	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("loading hand landmark model %q", cfg.ModelPath)
	}

	return &ONNXDetector{
		net:      net,
		minScore: cfg.MinScore,
	}, nil
}

// Detect runs the model on the full frame and returns zero or one hands.
// Landmark coordinates are normalized to the frame ([0,1]).
func (d *ONNXDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	blob := gocv.BlobFromImage(*frame, 1.0/255.0,
		image.Point{X: landmarkInputSize, Y: landmarkInputSize},
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	outputs := d.net.ForwardLayers([]string{landmarkOutLayer, handFlagOutLayer})
	defer func() {
		for i := range outputs {
			outputs[i].Close()
		}
	}()
	if len(outputs) < 2 {
		return nil, fmt.Errorf("model returned %d outputs, want 2", len(outputs))
	}

	score := float64(outputs[1].GetFloatAt(0, 0))
	if score < d.minScore {
		return nil, nil
	}

	landmarks := outputs[0]
	if landmarks.Total() < NumLandmarks*3 {
		return nil, fmt.Errorf("landmark output has %d values, want %d", landmarks.Total(), NumLandmarks*3)
	}

	hand := Hand{Score: score}
	for i := 0; i < NumLandmarks; i++ {
		// Model emits input-pixel coordinates; renormalize to [0,1]
		hand.Points[i] = Point3D{
			X: float64(landmarks.GetFloatAt(0, i*3)) / landmarkInputSize,
			Y: float64(landmarks.GetFloatAt(0, i*3+1)) / landmarkInputSize,
			Z: float64(landmarks.GetFloatAt(0, i*3+2)) / landmarkInputSize,
		}
	}

	return []Hand{hand}, nil
}

// Close releases the network.
func (d *ONNXDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
