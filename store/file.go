package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"soundest/logger"
)

// File is the default storage backend: all keys live in one small JSON
// object on disk, rewritten atomically on every mutation. It can watch
// its own file for external writes so a long-running session notices
// another process touching the same profile.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFile opens (or creates) the profile file at path.
func NewFile(path string) (*File, error) {
	f := &File{
		path: path,
		data: make(map[string]string),
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read profile %s: %w", f.path, err)
	}
	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		// A mangled profile should not brick the client. Individual keys
		// are simply gone; stores see ErrNotFound.
		logger.Warn("profile file is corrupt, starting empty",
			logger.String("path", f.path), logger.ErrorField(err))
		return nil
	}
	f.data = data
	return nil
}

func (f *File) flush() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}
	return nil
}

// Get implements Store.
func (f *File) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set implements Store.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flush()
}

// Delete implements Store.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flush()
}

// Watch starts observing the profile file and invokes onChange after an
// external write has been folded back into memory. Our own writes also
// land as rename events, so a reload that produces no difference from
// the in-memory state is ignored.
func (f *File) Watch(onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create profile watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch profile directory: %w", err)
	}
	f.watcher = watcher
	f.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != f.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				f.mu.Lock()
				before := make(map[string]string, len(f.data))
				for k, v := range f.data {
					before[k] = v
				}
				err := f.load()
				changed := !maps.Equal(before, f.data)
				f.mu.Unlock()
				if err != nil {
					logger.Warn("failed to reload profile after external change",
						logger.ErrorField(err))
					continue
				}
				if !changed {
					continue
				}
				logger.Debug("profile changed externally, reloaded",
					logger.String("path", f.path))
				if onChange != nil {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("profile watcher error", logger.ErrorField(err))
			case <-f.done:
				return
			}
		}
	}()
	return nil
}

// Close implements Store and stops any active watcher.
func (f *File) Close() error {
	if f.done != nil {
		close(f.done)
		f.done = nil
	}
	if f.watcher != nil {
		err := f.watcher.Close()
		f.watcher = nil
		return err
	}
	return nil
}
