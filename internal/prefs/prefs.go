package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"hubgrip/internal/eventbus"
)

// KeyLastQuery stores the most recently submitted search query
const KeyLastQuery = "last-query"

// Store is a file-backed key-value store for user preferences.
// Reads and writes go through an in-memory copy; external writes to the
// file are picked up by a watcher and fanned out to subscribers.
type Store struct {
	mu      sync.RWMutex
	path    string
	values  map[string]any
	subs    map[string][]subscriber
	nextSub uint64
	watcher *fsnotify.Watcher
	done    chan struct{}
	bus     eventbus.EventBus
	log     *zap.Logger
}

type subscriber struct {
	id uint64
	fn func(value any)
}

// New opens the preference store at path, creating it if missing
func New(path string, bus eventbus.EventBus, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}

	s := &Store{
		path:   path,
		values: make(map[string]any),
		subs:   make(map[string][]subscriber),
		done:   make(chan struct{}),
		bus:    bus,
		log:    log,
	}

	if err := s.reload(); err != nil && !os.IsNotExist(err) {
		// A corrupt prefs file degrades to defaults, it is never fatal
		log.Warn("could not read prefs file", zap.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create prefs watcher: %w", err)
	}
	s.watcher = watcher
	// Watch the directory: editors replace files instead of writing in place
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch prefs directory: %w", err)
	}

	go s.watch()

	return s, nil
}

// Get returns the stored value for name
func (s *Store) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// GetString returns the stored string for name, or fallback
func (s *Store) GetString(name, fallback string) string {
	if v, ok := s.Get(name); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return fallback
}

// GetBool returns the stored bool for name, or fallback
func (s *Store) GetBool(name string, fallback bool) bool {
	if v, ok := s.Get(name); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Set stores a value and persists the whole file.
// A nil value removes the key.
func (s *Store) Set(name string, value any) error {
	s.mu.Lock()
	if value == nil {
		delete(s.values, name)
	} else {
		s.values[name] = value
	}
	data, err := toml.Marshal(s.values)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write prefs file: %w", err)
	}

	s.notify(name, value)
	if s.bus != nil {
		s.bus.Publish(eventbus.PrefChangedEvent{Key: name})
	}
	return nil
}

// Subscribe registers fn to run whenever name's value changes.
// Returns an unsubscribe function.
func (s *Store) Subscribe(name string, fn func(value any)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs[name] = append(s.subs[name], subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subs[name]
		for i, sub := range subs {
			if sub.id == id {
				s.subs[name] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the file watcher
func (s *Store) Close() error {
	close(s.done)
	return s.watcher.Close()
}

func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	values := make(map[string]any)
	if err := toml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parse prefs: %w", err)
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

func (s *Store) watch() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			s.mu.RLock()
			before := make(map[string]any, len(s.values))
			for k, v := range s.values {
				before[k] = v
			}
			s.mu.RUnlock()

			if err := s.reload(); err != nil {
				s.log.Warn("prefs reload failed", zap.Error(err))
				continue
			}

			s.mu.RLock()
			after := make(map[string]any, len(s.values))
			for k, v := range s.values {
				after[k] = v
			}
			s.mu.RUnlock()

			for _, key := range changedKeys(before, after) {
				v := after[key]
				s.notify(key, v)
				if s.bus != nil {
					s.bus.Publish(eventbus.PrefChangedEvent{Key: key})
				}
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("prefs watcher error", zap.Error(err))

		case <-s.done:
			return
		}
	}
}

func (s *Store) notify(name string, value any) {
	s.mu.RLock()
	subs := make([]subscriber, len(s.subs[name]))
	copy(subs, s.subs[name])
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(value)
	}
}

func changedKeys(before, after map[string]any) []string {
	var changed []string
	for k, v := range after {
		if old, ok := before[k]; !ok || fmt.Sprint(old) != fmt.Sprint(v) {
			changed = append(changed, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			changed = append(changed, k)
		}
	}
	return changed
}
