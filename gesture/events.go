package gesture

// EventKind identifies a gesture event.
type EventKind uint8

const (
	// EventFist fires when the hand closes into a fist.
	EventFist EventKind = iota
	// EventOpen fires when the hand opens into a flat palm.
	EventOpen
	// EventMove fires for every classified frame while a hand is visible,
	// carrying the horizontal hand position.
	EventMove
)

// String returns the event name for logs.
func (k EventKind) String() string {
	switch k {
	case EventFist:
		return "fist"
	case EventOpen:
		return "open"
	default:
		return "move"
	}
}

// Event is a single recognized gesture. X is only meaningful for EventMove
// and is the wrist position normalized to [0, 1] across the frame.
type Event struct {
	Kind EventKind
	X    float64
}
