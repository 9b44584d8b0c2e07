// Package multiplayer provides session and match bookkeeping shared by the
// local runner, the SSH server and the spectator feed.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/gemduel/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 always moves first; Player2 is a second human or the CPU.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a connection (a terminal, an SSH session or
// a feed subscriber).
type SessionID string

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// MatchID uniquely identifies one duel from deal to result.
type MatchID string

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines who sits in the Player2 seat.
type MatchMode int

const (
	// MatchModeHotSeat is two humans sharing one keyboard.
	MatchModeHotSeat MatchMode = iota

	// MatchModeVsCPU puts the computer in the Player2 seat.
	MatchModeVsCPU
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeHotSeat:
		return "Hot Seat"
	case MatchModeVsCPU:
		return "vs CPU"
	default:
		return "Unknown"
	}
}

// Opponent returns the short opponent label stored with duel results.
func (m MatchMode) Opponent() string {
	switch m {
	case MatchModeVsCPU:
		return "cpu"
	default:
		return "hotseat"
	}
}

// Match is the metadata of one duel. The platform creates it and games
// read it to label results.
type Match struct {
	id   MatchID
	mode MatchMode

	// SessionIDs tracks which sessions are part of this match.
	SessionIDs []SessionID
}

// NewMatch creates a new match with the given parameters. An empty id is
// replaced by a fresh one.
func NewMatch(id MatchID, mode MatchMode, sessions ...SessionID) *Match {
	if id == "" {
		id = NewMatchID()
	}
	return &Match{
		id:         id,
		mode:       mode,
		SessionIDs: sessions,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Mode returns the match mode.
func (m *Match) Mode() MatchMode {
	return m.mode
}

// Sessions returns the session IDs participating in this match.
func (m *Match) Sessions() []SessionID {
	return m.SessionIDs
}
