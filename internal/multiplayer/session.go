package multiplayer

import "sync"

// SessionHandle is the transport-neutral interface for communicating with a session.
// It lets publishers push events without depending on WebSockets or Wish.
type SessionHandle interface {
	// ID returns the unique session identifier.
	ID() SessionID

	// Send queues an event for the session and reports whether it was
	// accepted. Must be non-blocking.
	Send(evt Event) bool

	// Done returns a channel that closes when the session ends.
	Done() <-chan struct{}
}

// ChannelSession is a SessionHandle implementation using Go channels.
// A writer goroutine drains Events and forwards them to the transport.
type ChannelSession struct {
	id       SessionID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once

	mu      sync.Mutex
	dropped int
}

// NewChannelSession creates a new channel-based session handle.
// eventBufferSize controls how many events can be buffered before dropping.
func NewChannelSession(id SessionID, eventBufferSize int) *ChannelSession {
	if eventBufferSize < 1 {
		eventBufferSize = 64 // Default buffer size
	}
	return &ChannelSession{
		id:     id,
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Send queues an event for the session without blocking. When the buffer
// is full the oldest queued event is dropped. It reports whether evt was
// queued.
func (s *ChannelSession) Send(evt Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.events <- evt:
		return true
	default:
	}

	s.mu.Lock()
	s.dropped++
	s.mu.Unlock()

	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
		return true
	default:
		return false
	}
}

// Dropped returns how many events were discarded because the reader fell
// behind.
func (s *ChannelSession) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Events returns the channel to receive events from.
func (s *ChannelSession) Events() <-chan Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as done.
// Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// SessionRegistry tracks active sessions.
// Thread-safe for concurrent access.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

// NewSessionRegistry creates a new session registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[SessionID]SessionHandle),
	}
}

// Register adds a session to the registry.
func (r *SessionRegistry) Register(session SessionHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
}

// Unregister removes a session from the registry.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get retrieves a session by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Broadcast sends evt to every registered session and returns how many
// accepted it.
func (r *SessionRegistry) Broadcast(evt Event) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sent := 0
	for _, s := range r.sessions {
		if s.Send(evt) {
			sent++
		}
	}
	return sent
}

// Each calls fn for every registered session. fn must not register or
// unregister sessions.
func (r *SessionRegistry) Each(fn func(SessionHandle)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		fn(s)
	}
}

// Count returns the number of registered sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
