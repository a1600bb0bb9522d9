package player

import (
	"sync"

	"soundest/logger"
	"soundest/model"
)

// Controller binds the queue to a media device. Every queue change loads
// the new current song from position zero and starts it; when the device
// reports the song ended the controller advances the queue, so the
// wrap-around navigation gives continuous play.
//
// Queue intent and device reality are allowed to diverge transiently: if
// the device refuses to start (Play returns an error), the queue still
// points at the intended song while the controller sits in Paused.
type Controller struct {
	mu    sync.Mutex
	queue *Queue
	dev   Device

	state    State
	position float64
	duration float64

	// onSongStart is invoked (outside the lock) whenever a new song is
	// loaded into the device, e.g. to record it as recently played.
	onSongStart func(model.Song)
}

// NewController creates a controller over the given queue and device.
// The device must be constructed with c.HandleEvent as its event sink;
// when the device itself needs that function first, pass nil here and
// attach it with SetDevice before playing anything.
func NewController(queue *Queue, dev Device) *Controller {
	return &Controller{queue: queue, dev: dev, state: StateIdle}
}

// SetDevice attaches the device. Resolves the construction cycle between
// a device that wants the event sink and a controller that wants the
// device.
func (c *Controller) SetDevice(dev Device) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dev = dev
}

// OnSongStart registers a hook called each time a new song starts
// loading. Pass nil to clear.
func (c *Controller) OnSongStart(fn func(model.Song)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSongStart = fn
}

// PlayList replaces the queue with songs, starting at startIndex, and
// begins playback of the selected song.
func (c *Controller) PlayList(songs []model.Song, startIndex int) {
	c.mu.Lock()
	c.queue.Replace(songs, startIndex)
	c.loadCurrentLocked()
	c.mu.Unlock()
}

// PlaySingle queues exactly one song and plays it. Re-triggering the
// song already playing leaves playback untouched.
func (c *Controller) PlaySingle(song model.Song) {
	c.mu.Lock()
	if cur, ok := c.queue.Current(); ok && cur.AudioURL == song.AudioURL {
		c.mu.Unlock()
		return
	}
	c.queue.SetSingle(song)
	c.loadCurrentLocked()
	c.mu.Unlock()
}

// Next advances the queue and plays the new current song.
func (c *Controller) Next() {
	c.mu.Lock()
	if c.queue.Len() == 0 {
		c.mu.Unlock()
		return
	}
	c.queue.Next()
	c.loadCurrentLocked()
	c.mu.Unlock()
}

// Previous retreats the queue and plays the new current song.
func (c *Controller) Previous() {
	c.mu.Lock()
	if c.queue.Len() == 0 {
		c.mu.Unlock()
		return
	}
	c.queue.Previous()
	c.loadCurrentLocked()
	c.mu.Unlock()
}

// TogglePause flips between Playing and Paused. No-op unless a song is
// loaded.
func (c *Controller) TogglePause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StatePlaying:
		if err := c.dev.Pause(); err != nil {
			logger.Warn("pause failed", logger.ErrorField(err))
			return
		}
		c.state = StatePaused
	case StatePaused:
		if err := c.dev.Play(); err != nil {
			logger.Warn("resume failed", logger.ErrorField(err))
			return
		}
		c.state = StatePlaying
	}
}

// Seek jumps to the given position in seconds.
func (c *Controller) Seek(position float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle || c.state == StateLoading {
		return
	}
	if err := c.dev.Seek(position); err != nil {
		logger.Warn("seek failed", logger.ErrorField(err))
		return
	}
	c.position = position
}

// SetVolume sets the output level, 0.0 to 1.0.
func (c *Controller) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	if err := c.dev.SetVolume(level); err != nil {
		logger.Warn("set volume failed", logger.ErrorField(err))
	}
}

// Current returns the queued current song.
func (c *Controller) Current() (model.Song, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Current()
}

// State returns the controller's view of the device lifecycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Progress returns position and duration in seconds.
func (c *Controller) Progress() (position, duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position, c.duration
}

// HandleEvent consumes a device event and drives the state machine. It
// is the EventFunc to hand the device at construction.
func (c *Controller) HandleEvent(ev Event) {
	c.mu.Lock()
	switch ev.Kind {
	case EventMetadataLoaded:
		c.duration = ev.Duration
		if c.state == StateLoading {
			c.state = StatePlaying
		}
		c.mu.Unlock()
	case EventTimeUpdate:
		c.position = ev.Position
		c.mu.Unlock()
	case EventEnded:
		c.state = StateEnded
		if c.queue.Len() == 0 {
			c.mu.Unlock()
			return
		}
		c.queue.Next()
		c.loadCurrentLocked()
		c.mu.Unlock()
	case EventError:
		logger.Error("playback device error", logger.ErrorField(ev.Err))
		c.state = StateIdle
		c.mu.Unlock()
	default:
		c.mu.Unlock()
	}
}

// loadCurrentLocked loads and starts the queue's current song. Caller
// holds the mutex.
func (c *Controller) loadCurrentLocked() {
	song, ok := c.queue.Current()
	if !ok {
		c.state = StateIdle
		c.position = 0
		c.duration = 0
		return
	}

	c.position = 0
	c.duration = 0
	c.state = StateLoading

	if err := c.dev.Load(song.AudioURL); err != nil {
		logger.Error("failed to load song",
			logger.String("title", song.Title), logger.ErrorField(err))
		c.state = StateIdle
		return
	}
	if err := c.dev.Play(); err != nil {
		// The autoplay-refusal case: intent says playing, device says no.
		logger.Warn("device refused to start playback",
			logger.String("title", song.Title), logger.ErrorField(err))
		c.state = StatePaused
	} else {
		c.state = StatePlaying
	}

	if c.onSongStart != nil {
		fn := c.onSongStart
		go fn(song)
	}
}
