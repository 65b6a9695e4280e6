// Package resource bridges async fetches to a loading/ready state whose
// updates are keyed to request issuance order. A fetch that was superseded
// by a newer one can complete, but its result is silently dropped, so the
// displayed value always belongs to the latest request.
package resource

import "sync"

// Status is the lifecycle phase of a loaded value
type Status int

const (
	StatusLoading Status = iota
	StatusReady
)

func (s Status) String() string {
	if s == StatusReady {
		return "ready"
	}
	return "loading"
}

// State is the observable result of a Loader
type State[T any] struct {
	Status Status
	Value  T
}

// Loader tracks one resource. The zero value is usable and starts in the
// loading state. There is no request cancellation: superseded fetches run
// to completion and their results are ignored at apply time.
type Loader[T any] struct {
	mu      sync.Mutex
	version uint64
	state   State[T]
}

// Begin starts a new fetch generation, resetting the state to loading and
// invalidating all earlier generations. The returned apply function
// delivers that generation's result; it reports whether the result was
// accepted (false means a newer Begin or Invalidate happened first).
func (l *Loader[T]) Begin() func(T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.version++
	version := l.version
	l.state = State[T]{Status: StatusLoading}

	return func(value T) bool {
		l.mu.Lock()
		defer l.mu.Unlock()

		if version != l.version {
			return false
		}
		l.state = State[T]{Status: StatusReady, Value: value}
		return true
	}
}

// Invalidate drops any in-flight generation without starting a new one.
// Used on teardown so late completions cannot resurrect state.
func (l *Loader[T]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.version++
	l.state = State[T]{Status: StatusLoading}
}

// State returns the current observable state
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Version returns the current fetch generation, for callers that tag
// their own messages with it
func (l *Loader[T]) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}
