package player

import (
	"errors"
	"sync"
	"testing"
	"time"

	"soundest/model"
)

// fakeDevice records commands and lets tests script failures. Events are
// injected by calling the controller's HandleEvent directly, matching
// the asynchronous-delivery contract.
type fakeDevice struct {
	mu      sync.Mutex
	loads   []string
	playErr error
	plays   int
	pauses  int
	volume  float64
}

func (d *fakeDevice) Load(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loads = append(d.loads, url)
	return nil
}

func (d *fakeDevice) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.plays++
	return d.playErr
}

func (d *fakeDevice) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pauses++
	return nil
}

func (d *fakeDevice) Seek(position float64) error { return nil }

func (d *fakeDevice) SetVolume(level float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = level
	return nil
}

func (d *fakeDevice) Close() error { return nil }

func (d *fakeDevice) lastLoad() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.loads) == 0 {
		return ""
	}
	return d.loads[len(d.loads)-1]
}

func newTestController(dev *fakeDevice) *Controller {
	return NewController(NewQueue(), dev)
}

func TestController(t *testing.T) {
	t.Run("PlayListLoadsAndPlays", func(t *testing.T) {
		dev := &fakeDevice{}
		ctrl := newTestController(dev)

		ctrl.PlayList(threeSongs(), 1)

		if got := dev.lastLoad(); got != "http://cdn/b.mp3" {
			t.Errorf("expected load of B, got %s", got)
		}
		if ctrl.State() != StatePlaying {
			t.Errorf("expected playing, got %s", ctrl.State())
		}
	})

	t.Run("AutoplayRefusalLeavesPaused", func(t *testing.T) {
		dev := &fakeDevice{playErr: errors.New("output device busy")}
		ctrl := newTestController(dev)

		ctrl.PlayList(threeSongs(), 0)

		// Queue intent and device reality diverge: the song is current
		// but playback is paused.
		if ctrl.State() != StatePaused {
			t.Errorf("expected paused after refused start, got %s", ctrl.State())
		}
		cur, ok := ctrl.Current()
		if !ok || cur.Title != "A" {
			t.Errorf("queue must still point at the intended song")
		}
	})

	t.Run("EndedAdvancesQueue", func(t *testing.T) {
		dev := &fakeDevice{}
		ctrl := newTestController(dev)
		ctrl.PlayList(threeSongs(), 2)

		ctrl.HandleEvent(Event{Kind: EventEnded})

		cur, _ := ctrl.Current()
		if cur.Title != "A" {
			t.Errorf("ended on the last song must wrap to the first, got %s", cur.Title)
		}
		if got := dev.lastLoad(); got != "http://cdn/a.mp3" {
			t.Errorf("expected the next song loaded, got %s", got)
		}
		if ctrl.State() != StatePlaying {
			t.Errorf("expected playing after auto-advance, got %s", ctrl.State())
		}
	})

	t.Run("PlaySingleSameURLIsNoop", func(t *testing.T) {
		dev := &fakeDevice{}
		ctrl := newTestController(dev)
		ctrl.PlayList(threeSongs(), 0)
		loads := len(dev.loads)

		ctrl.PlaySingle(song("A again", "http://cdn/a.mp3"))
		if len(dev.loads) != loads {
			t.Error("re-triggering the playing song must not reload it")
		}
	})

	t.Run("TogglePause", func(t *testing.T) {
		dev := &fakeDevice{}
		ctrl := newTestController(dev)
		ctrl.PlayList(threeSongs(), 0)

		ctrl.TogglePause()
		if ctrl.State() != StatePaused {
			t.Fatalf("expected paused, got %s", ctrl.State())
		}
		ctrl.TogglePause()
		if ctrl.State() != StatePlaying {
			t.Errorf("expected playing after resume, got %s", ctrl.State())
		}
	})

	t.Run("MetadataAndTimeEvents", func(t *testing.T) {
		dev := &fakeDevice{}
		ctrl := newTestController(dev)
		ctrl.PlayList(threeSongs(), 0)

		ctrl.HandleEvent(Event{Kind: EventMetadataLoaded, Duration: 211.5})
		ctrl.HandleEvent(Event{Kind: EventTimeUpdate, Position: 42})

		position, duration := ctrl.Progress()
		if position != 42 || duration != 211.5 {
			t.Errorf("expected 42/211.5, got %v/%v", position, duration)
		}
	})

	t.Run("OnSongStartHook", func(t *testing.T) {
		dev := &fakeDevice{}
		ctrl := newTestController(dev)

		started := make(chan model.Song, 4)
		ctrl.OnSongStart(func(s model.Song) { started <- s })

		ctrl.PlayList(threeSongs(), 0)
		select {
		case s := <-started:
			if s.Title != "A" {
				t.Errorf("expected A to start, got %s", s.Title)
			}
		case <-time.After(time.Second):
			t.Fatal("song-start hook never fired")
		}

		ctrl.Next()
		select {
		case s := <-started:
			if s.Title != "B" {
				t.Errorf("expected B after Next, got %s", s.Title)
			}
		case <-time.After(time.Second):
			t.Fatal("song-start hook never fired for Next")
		}
	})

	t.Run("EmptyQueueNavigation", func(t *testing.T) {
		dev := &fakeDevice{}
		ctrl := newTestController(dev)

		ctrl.Next()
		ctrl.Previous()
		if len(dev.loads) != 0 {
			t.Error("navigating an empty queue must not touch the device")
		}
		if ctrl.State() != StateIdle {
			t.Errorf("expected idle, got %s", ctrl.State())
		}
	})
}
