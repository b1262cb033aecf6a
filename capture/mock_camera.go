package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a pre-recorded frame sequence for tests.
type MockCamera struct {
	frames []*gocv.Mat
	index  int
	loop   bool
	mu     sync.Mutex
	open   bool
}

// NewMockCamera creates a mock camera over the given frames. With loop set,
// playback wraps around instead of running out.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
	}
}

// Open resets playback to the first frame.
func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.index = 0
	return nil
}

// Close stops playback.
func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

// ReadFrame returns a clone of the next recorded frame.
func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraNotOpen
	}
	if len(c.frames) == 0 {
		return nil, errors.New("no frames available")
	}
	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, errors.New("no more frames")
		}
		c.index = 0
	}

	// Clone so callers cannot mutate the recording
	frame := c.frames[c.index].Clone()
	c.index++

	return &frame, nil
}

// SetFPS is a no-op for the mock.
func (c *MockCamera) SetFPS(fps int) {}

// FPS returns a fixed playback rate.
func (c *MockCamera) FPS() int { return 15 }

// IsOpen reports whether Open has been called.
func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}
