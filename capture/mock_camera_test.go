package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func recordedFrames(t *testing.T, values ...float64) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, len(values))
	for i, v := range values {
		m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), 60, 80, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func TestMockCameraRequiresOpen(t *testing.T) {
	c := NewMockCamera(recordedFrames(t, 50), false)

	if _, err := c.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame before Open returned %v, want ErrCameraNotOpen", err)
	}
	if c.IsOpen() {
		t.Error("IsOpen() = true before Open")
	}
}

func TestMockCameraPlayback(t *testing.T) {
	c := NewMockCamera(recordedFrames(t, 10, 20, 30), false)
	if err := c.Open(); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	for i, want := range []uint8{10, 20, 30} {
		frame, err := c.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame %d failed: %v", i, err)
		}
		got := frame.GetUCharAt(0, 0)
		frame.Close()
		if got != want {
			t.Errorf("Frame %d pixel = %d, want %d", i, got, want)
		}
	}

	if _, err := c.ReadFrame(); err == nil {
		t.Error("ReadFrame past the recording succeeded, want error without loop")
	}
}

func TestMockCameraLoops(t *testing.T) {
	c := NewMockCamera(recordedFrames(t, 10, 20), true)
	if err := c.Open(); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	want := []uint8{10, 20, 10, 20, 10}
	for i, w := range want {
		frame, err := c.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame %d failed: %v", i, err)
		}
		got := frame.GetUCharAt(0, 0)
		frame.Close()
		if got != w {
			t.Errorf("Looped frame %d pixel = %d, want %d", i, got, w)
		}
	}
}

func TestMockCameraClonesFrames(t *testing.T) {
	c := NewMockCamera(recordedFrames(t, 100), true)
	if err := c.Open(); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer c.Close()

	first, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	first.SetUCharAt(0, 0, 0)
	first.Close()

	second, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	defer second.Close()
	if got := second.GetUCharAt(0, 0); got != 100 {
		t.Errorf("Mutating a returned frame leaked into the recording: pixel = %d, want 100", got)
	}
}

func TestMockCameraOpenResetsPlayback(t *testing.T) {
	c := NewMockCamera(recordedFrames(t, 10, 20), false)
	if err := c.Open(); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	frame, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	frame.Close()

	c.Close()
	if err := c.Open(); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer c.Close()

	frame, err = c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame after reopen failed: %v", err)
	}
	defer frame.Close()
	if got := frame.GetUCharAt(0, 0); got != 10 {
		t.Errorf("Reopen did not rewind playback: pixel = %d, want 10", got)
	}
}
