package player

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// Speaker plays MP3 sources over the machine's audio output. It fetches
// the whole source into memory before decoding; catalogue songs are a
// few megabytes, and the decoder needs a seekable reader anyway.
type Speaker struct {
	mu   sync.Mutex
	emit EventFunc
	http *http.Client

	sampleRate  beep.SampleRate
	initialized bool

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64

	// gen invalidates end-of-song callbacks and progress tickers left
	// over from a superseded load.
	gen        int
	tickerStop chan struct{}
}

// NewSpeaker creates a speaker-backed device delivering events to emit.
func NewSpeaker(emit EventFunc) *Speaker {
	return &Speaker{
		emit:       emit,
		http:       &http.Client{Timeout: 60 * time.Second},
		sampleRate: beep.SampleRate(44100),
		level:      1.0,
	}
}

// Load implements Device. The song is fetched, decoded and queued on the
// speaker paused; Play unpauses it.
func (s *Speaker) Load(url string) error {
	resp, err := s.http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch audio: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}

	streamer, format, err := mp3.Decode(nopCloser{bytes.NewReader(data)})
	if err != nil {
		return fmt.Errorf("failed to decode audio: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	if !s.initialized {
		if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		s.initialized = true
	}

	s.gen++
	gen := s.gen
	s.streamer = streamer
	s.format = format

	resampled := beep.Resample(4, format.SampleRate, s.sampleRate, streamer)
	s.ctrl = &beep.Ctrl{Streamer: resampled, Paused: true}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2}
	s.applyLevelLocked()

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// Runs on the speaker goroutine; never emit from there directly.
		go s.songDone(gen)
	})))

	duration := format.SampleRate.D(streamer.Len()).Seconds()
	go s.emit(Event{Kind: EventMetadataLoaded, Duration: duration})

	s.tickerStop = make(chan struct{})
	go s.progressLoop(gen, s.tickerStop)

	return nil
}

// Play implements Device.
func (s *Speaker) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return fmt.Errorf("no song loaded")
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause implements Device.
func (s *Speaker) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return fmt.Errorf("no song loaded")
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

// Seek implements Device.
func (s *Speaker) Seek(position float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return fmt.Errorf("no song loaded")
	}
	speaker.Lock()
	defer speaker.Unlock()
	samples := s.format.SampleRate.N(time.Duration(position * float64(time.Second)))
	if samples < 0 {
		samples = 0
	}
	if samples >= s.streamer.Len() {
		samples = s.streamer.Len() - 1
	}
	return s.streamer.Seek(samples)
}

// SetVolume implements Device. Level 0 mutes; otherwise the linear level
// maps onto beep's exponential volume scale.
func (s *Speaker) SetVolume(level float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
	if s.volume == nil {
		return nil
	}
	speaker.Lock()
	s.applyLevelLocked()
	speaker.Unlock()
	return nil
}

// applyLevelLocked pushes s.level into the active volume node. Caller
// holds s.mu (and speaker lock when the node is live).
func (s *Speaker) applyLevelLocked() {
	if s.volume == nil {
		return
	}
	if s.level <= 0 {
		s.volume.Silent = true
		return
	}
	s.volume.Silent = false
	s.volume.Volume = math.Log2(s.level)
}

// Close implements Device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	return nil
}

// stopLocked tears down the current playback chain. Caller holds s.mu.
func (s *Speaker) stopLocked() {
	if s.tickerStop != nil {
		close(s.tickerStop)
		s.tickerStop = nil
	}
	if s.initialized {
		speaker.Clear()
	}
	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	s.ctrl = nil
	s.volume = nil
	s.gen++
}

// songDone forwards the end-of-song callback unless a newer load
// superseded it.
func (s *Speaker) songDone(gen int) {
	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}
	s.emit(Event{Kind: EventEnded})
}

// progressLoop emits periodic TimeUpdate events for the given load
// generation until stopped.
func (s *Speaker) progressLoop(gen int, stop <-chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if gen != s.gen || s.streamer == nil {
				s.mu.Unlock()
				return
			}
			speaker.Lock()
			pos := s.format.SampleRate.D(s.streamer.Position()).Seconds()
			paused := s.ctrl.Paused
			speaker.Unlock()
			s.mu.Unlock()
			if !paused {
				s.emit(Event{Kind: EventTimeUpdate, Position: pos})
			}
		}
	}
}

// nopCloser adapts a bytes.Reader to the io.ReadCloser the decoder wants.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
