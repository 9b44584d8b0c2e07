package multiplayer

// EventKind classifies an Event.
type EventKind string

const (
	// EventStep carries one resolution step of an accepted move.
	EventStep EventKind = "step"
	// EventTurn carries the outcome of a submitted move.
	EventTurn EventKind = "turn"
	// EventSnapshot carries the full session state.
	EventSnapshot EventKind = "snapshot"
)

// Event is a message delivered to a session. Data is an encoded payload;
// the producer decides the encoding.
type Event struct {
	Kind  EventKind
	Match MatchID
	Data  []byte
}
