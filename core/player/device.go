package player

// State is the playback lifecycle of the media device as the controller
// tracks it.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StatePaused
	StateEnded
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EventKind discriminates device events.
type EventKind int

const (
	// EventMetadataLoaded fires once the source is decoded enough to know
	// its duration.
	EventMetadataLoaded EventKind = iota
	// EventTimeUpdate fires periodically with the playback position.
	EventTimeUpdate
	// EventEnded fires when the source plays to completion.
	EventEnded
	// EventError fires when the device fails mid-playback.
	EventError
)

// Event is emitted by a Device to its listener. Position and Duration
// are in seconds.
type Event struct {
	Kind     EventKind
	Position float64
	Duration float64
	Err      error
}

// EventFunc receives device events. Implementations must be safe to call
// from the device's own goroutines.
type EventFunc func(Event)

// Device abstracts the audio backend, mirroring the media-element
// surface: load a source, start/stop, seek, set volume. Events flow back
// through the EventFunc given at construction. Devices must deliver
// events asynchronously, never from inside a command call, or the
// controller would deadlock on its own lock.
//
// This abstraction keeps the controller testable against a scripted fake
// and lets real output (speaker) plug in underneath.
type Device interface {
	// Load prepares the given audio URL for playback from position zero,
	// discarding whatever was loaded before.
	Load(url string) error

	// Play starts or resumes playback. An error means the device refused
	// to start; loaded state is kept.
	Play() error

	// Pause halts playback without losing position.
	Pause() error

	// Seek jumps to the given position in seconds.
	Seek(position float64) error

	// SetVolume sets the output level, 0.0 (mute) to 1.0 (full).
	SetVolume(level float64) error

	// Close releases the device.
	Close() error
}
