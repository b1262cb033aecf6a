package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func solidFrame(t *testing.T, value float64) *gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, value, value, 0), 120, 160, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { m.Close() })
	return &m
}

func TestMotionFirstFrameIsBaseline(t *testing.T) {
	d := NewMotionDetector(1.0)
	defer d.Close()

	moved, percent := d.Detect(solidFrame(t, 200))
	if moved {
		t.Error("First frame reported motion, want baseline only")
	}
	if percent != 0 {
		t.Errorf("First frame change percent = %v, want 0", percent)
	}
}

func TestMotionDetectsFrameChange(t *testing.T) {
	d := NewMotionDetector(1.0)
	defer d.Close()

	d.Detect(solidFrame(t, 10))
	moved, percent := d.Detect(solidFrame(t, 220))
	if !moved {
		t.Error("Dark-to-bright frame change not detected as motion")
	}
	if percent < 90 {
		t.Errorf("Full-frame change reported %v%% changed pixels, want near 100", percent)
	}
}

func TestMotionIgnoresStaticScene(t *testing.T) {
	d := NewMotionDetector(1.0)
	defer d.Close()

	d.Detect(solidFrame(t, 100))
	moved, percent := d.Detect(solidFrame(t, 100))
	if moved {
		t.Errorf("Identical frames reported motion (%v%% changed)", percent)
	}
}

func TestMotionIgnoresSubThresholdNoise(t *testing.T) {
	// Below the binary diff threshold, a small uniform brightness shift is
	// indistinguishable from sensor noise
	d := NewMotionDetector(1.0)
	defer d.Close()

	d.Detect(solidFrame(t, 100))
	moved, _ := d.Detect(solidFrame(t, 110))
	if moved {
		t.Error("Sub-threshold brightness shift reported as motion")
	}
}

func TestMotionResetClearsBaseline(t *testing.T) {
	d := NewMotionDetector(1.0)
	defer d.Close()

	d.Detect(solidFrame(t, 10))
	d.Reset()

	// After reset the bright frame is a fresh baseline, not a change
	moved, _ := d.Detect(solidFrame(t, 220))
	if moved {
		t.Error("First frame after Reset reported motion, want baseline only")
	}
}

func TestMotionEmptyFrame(t *testing.T) {
	d := NewMotionDetector(1.0)
	defer d.Close()

	empty := gocv.NewMat()
	defer empty.Close()

	moved, percent := d.Detect(&empty)
	if moved || percent != 0 {
		t.Errorf("Empty frame reported (%v, %v), want (false, 0)", moved, percent)
	}
	if moved, _ := d.Detect(nil); moved {
		t.Error("nil frame reported motion")
	}
}
