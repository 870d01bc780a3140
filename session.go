package identkit

import "sync"

// Snapshot is an immutable copy of the session at one observable instant.
// Valid is true if and only if an identity payload was held when the
// snapshot was taken.
type Snapshot struct {
	Identity Identity
	Valid    bool
}

// SessionState is the single source of truth for "who is signed in right
// now", scoped to one application session. It holds no behavior beyond
// storage and accessors: no network calls, no authorization decisions —
// those belong to [Guard].
//
// All mutation is a full replace ([SessionState.Set]) or a full clear
// ([SessionState.Clear]), never a partial update. SessionState is safe for
// concurrent use.
type SessionState struct {
	mu        sync.RWMutex
	identity  *Identity
	observers map[uint64]func(Snapshot)
	nextObs   uint64
}

// NewSessionState returns an empty, cleared session container.
func NewSessionState() *SessionState {
	return &SessionState{
		observers: make(map[uint64]func(Snapshot)),
	}
}

// Set replaces the held identity and marks the session valid. It always
// succeeds; observers see the new identity immediately.
func (s *SessionState) Set(id Identity) {
	s.mu.Lock()
	held := id
	s.identity = &held
	snap := Snapshot{Identity: id, Valid: true}
	observers := s.observerList()
	s.mu.Unlock()

	notify(observers, snap)
}

// Clear discards the held identity and marks the session invalid. Clearing
// an already-cleared session is a no-op: observers are not re-notified.
func (s *SessionState) Clear() {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return
	}
	s.identity = nil
	observers := s.observerList()
	s.mu.Unlock()

	notify(observers, Snapshot{})
}

// Get returns the held identity, or ok=false when the session is cleared.
func (s *SessionState) Get() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Valid reports whether an identity payload is currently held.
func (s *SessionState) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Email returns the signed-in email, or ok=false when the session is
// cleared. A cleared session never yields a stale value.
func (s *SessionState) Email() (string, bool) {
	id, ok := s.Get()
	if !ok {
		return "", false
	}
	return id.Email, true
}

// ID returns the signed-in user id, or ok=false when the session is cleared.
func (s *SessionState) ID() (int64, bool) {
	id, ok := s.Get()
	if !ok {
		return 0, false
	}
	return id.ID, true
}

// Role returns the signed-in role, or ok=false when the session is cleared.
func (s *SessionState) Role() (Role, bool) {
	id, ok := s.Get()
	if !ok {
		return "", false
	}
	return id.Role, true
}

// Subscribe registers fn to be called with a [Snapshot] after every
// observable state change. It returns a cancel function that removes the
// subscription. fn is invoked outside the container's lock and may call
// back into accessors.
func (s *SessionState) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	key := s.nextObs
	s.nextObs++
	s.observers[key] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, key)
		s.mu.Unlock()
	}
}

// observerList copies the registered observers. Callers must hold s.mu.
func (s *SessionState) observerList() []func(Snapshot) {
	if len(s.observers) == 0 {
		return nil
	}
	list := make([]func(Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		list = append(list, fn)
	}
	return list
}

func notify(observers []func(Snapshot), snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}
