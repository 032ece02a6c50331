package viewmodel

import (
	"sync"
)

// Dispatcher runs a subscriber callback. Hosts with a UI loop can supply one
// that marshals the call onto that loop; the default calls fn directly.
type Dispatcher func(fn func())

func direct(fn func()) { fn() }

// Signal is an observable value. Subscribers are called synchronously, via
// the Dispatcher, for every publication. Once disposed, publications are
// dropped silently, including deliveries of a publication already under way.
type Signal[T any] struct {
	mu       sync.Mutex
	value    T
	subs     map[uint64]func(T)
	nextID   uint64
	disposed bool
	dispatch Dispatcher
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T, dispatch Dispatcher) *Signal[T] {
	if dispatch == nil {
		dispatch = direct
	}
	return &Signal[T]{
		value:    initial,
		subs:     make(map[uint64]func(T)),
		dispatch: dispatch,
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn for future publications and returns a function that
// removes it. fn is not called with the current value.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// publish stores v and notifies subscribers. It reports false when the
// signal was already disposed. Each callback re-checks the subscription
// right before it runs, so a dispose or unsubscribe from an earlier callback
// stops the remaining ones.
func (s *Signal[T]) publish(v T) bool {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return false
	}
	s.value = v
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.dispatch(func() {
			if fn := s.live(id); fn != nil {
				fn(v)
			}
		})
	}
	return true
}

// live returns subscriber id, or nil once it is gone or the signal is disposed.
func (s *Signal[T]) live(id uint64) func(T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil
	}
	return s.subs[id]
}

// dispose drops all subscribers; later publications are no-ops.
func (s *Signal[T]) dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	clear(s.subs)
}
