package gesture

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/sapling/capture"
)

// RecognizerConfig holds the recognition loop tuning.
type RecognizerConfig struct {
	IdleFPS       int           // Capture rate while the scene is still
	ActiveFPS     int           // Capture rate while motion is present
	IdleTimeout   time.Duration // Time without motion before dropping to idle
	MotionPercent float64       // Changed-pixel percentage that counts as motion
	FistThreshold float64
	OpenThreshold float64
	MinScore      float64
}

// Recognizer runs the camera-to-event loop on its own goroutine: read a
// frame, gate on motion, run the landmark detector, classify the pose, and
// publish events. The render loop drains Events at its own cadence; if the
// channel is full the event is dropped and counted rather than blocking the
// capture loop.
type Recognizer struct {
	cfg        RecognizerConfig
	camera     capture.Camera
	detector   Detector
	motion     *capture.MotionDetector
	classifier *Classifier

	events  chan Event
	dropped atomic.Int64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewRecognizer wires a recognizer over the given camera and detector. The
// recognizer takes ownership of both and closes them on Stop.
func NewRecognizer(cfg RecognizerConfig, camera capture.Camera, detector Detector) *Recognizer {
	return &Recognizer{
		cfg:        cfg,
		camera:     camera,
		detector:   detector,
		motion:     capture.NewMotionDetector(cfg.MotionPercent),
		classifier: NewClassifier(cfg.FistThreshold, cfg.OpenThreshold, cfg.MinScore),
		events:     make(chan Event, 32),
		stopCh:     make(chan struct{}),
	}
}

// Events returns the channel the recognizer publishes on.
func (r *Recognizer) Events() <-chan Event { return r.events }

// Dropped returns how many events were discarded because the host was not
// draining fast enough.
func (r *Recognizer) Dropped() int64 { return r.dropped.Load() }

// Start opens the camera and launches the recognition loop. A failure here
// is the single surfaced error path: the host reports it once and runs on
// without gestures.
func (r *Recognizer) Start() error {
	if err := r.camera.Open(); err != nil {
		return fmt.Errorf("opening camera: %w", err)
	}
	r.camera.SetFPS(r.cfg.IdleFPS)

	r.wg.Add(1)
	go r.run()
	return nil
}

// Stop terminates the loop and releases the camera, detector, and motion
// baseline. Safe to call once after a successful Start.
func (r *Recognizer) Stop() {
	close(r.stopCh)
	r.wg.Wait()

	if err := r.camera.Close(); err != nil {
		slog.Warn("closing camera", "error", err)
	}
	if err := r.detector.Close(); err != nil {
		slog.Warn("closing detector", "error", err)
	}
	r.motion.Close()
}

// run is the capture loop. It idles at a low frame rate until motion wakes
// it, mirrors the rate back down after a quiet period, and only runs the
// landmark model while active.
func (r *Recognizer) run() {
	defer r.wg.Done()

	active := false
	lastMotion := time.Now()
	lastPose := PoseNone

	interval := time.Second / time.Duration(r.cfg.IdleFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			frame, err := r.camera.ReadFrame()
			if err != nil {
				slog.Warn("reading frame", "error", err)
				continue
			}

			moved, _ := r.motion.Detect(frame)
			if moved {
				lastMotion = time.Now()
				if !active {
					active = true
					r.camera.SetFPS(r.cfg.ActiveFPS)
					interval = time.Second / time.Duration(r.cfg.ActiveFPS)
					ticker.Reset(interval)
				}
			} else if active && time.Since(lastMotion) > r.cfg.IdleTimeout {
				active = false
				lastPose = PoseNone
				r.camera.SetFPS(r.cfg.IdleFPS)
				interval = time.Second / time.Duration(r.cfg.IdleFPS)
				ticker.Reset(interval)
			}

			if !active {
				frame.Close()
				continue
			}

			hands, err := r.detector.Detect(frame)
			frame.Close()
			if err != nil {
				slog.Warn("hand detection", "error", err)
				continue
			}
			if len(hands) == 0 {
				lastPose = PoseNone
				continue
			}

			hand := &hands[0]

			// Pose commands fire on transitions only; the field commands
			// are idempotent either way
			pose := r.classifier.Classify(hand)
			if pose != lastPose {
				switch pose {
				case PoseFist:
					r.publish(Event{Kind: EventFist})
				case PoseOpen:
					r.publish(Event{Kind: EventOpen})
				}
				lastPose = pose
			}

			// Movement is continuous while a hand is visible
			r.publish(Event{Kind: EventMove, X: PalmX(hand)})
		}
	}
}

// publish sends without blocking the capture loop.
func (r *Recognizer) publish(ev Event) {
	select {
	case r.events <- ev:
	default:
		r.dropped.Add(1)
	}
}
