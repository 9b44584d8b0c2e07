package match3

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/gemduel/internal/core"
)

// Status is the terminal state of a session.
type Status int

const (
	StatusOngoing Status = iota
	StatusPlayer1Wins
	StatusPlayer2Wins
	StatusDraw
	StatusWin
	StatusLose
)

var statusNames = [...]string{"ongoing", "player1_wins", "player2_wins", "draw", "win", "lose"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Over reports whether the session has ended.
func (s Status) Over() bool {
	return s != StatusOngoing
}

// Reason explains why a move was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonGameOver
	ReasonNotYourTurn
	ReasonOutOfBounds
	ReasonNotAdjacent
	ReasonNoMatch
)

var reasonNames = [...]string{"", "game over", "not your turn", "out of bounds", "not adjacent", "no match"}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// MarshalText encodes the reason as text.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Scores holds both players' totals.
type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// Of returns the score of p.
func (s Scores) Of(p core.PlayerID) int {
	if p == core.Player2 {
		return s.Player2
	}
	return s.Player1
}

// Max returns the higher of the two scores.
func (s Scores) Max() int {
	return max(s.Player1, s.Player2)
}

func (s *Scores) add(p core.PlayerID, pts int) {
	if p == core.Player2 {
		s.Player2 += pts
	} else {
		s.Player1 += pts
	}
}

// TurnOutcome reports what a SubmitMove call did.
type TurnOutcome struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`

	Player     core.PlayerID `json:"player"`
	Move       Move          `json:"move"`
	Points     int           `json:"points"`
	Cleared    int           `json:"cleared"`
	Passes     int           `json:"passes"`
	Combo      int           `json:"combo"`
	Reshuffled bool          `json:"reshuffled"`

	Scores         Scores        `json:"scores"`
	Status         Status        `json:"status"`
	NextPlayer     core.PlayerID `json:"next_player"`
	MovesRemaining int           `json:"moves_remaining"`

	Steps []Step `json:"-"`
}

// ResetOptions changes the board shape on Reset. Zero fields keep the
// current value.
type ResetOptions struct {
	Rows    int
	Cols    int
	Palette int
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Mode           Mode          `json:"mode"`
	Board          *Board        `json:"board"`
	Scores         Scores        `json:"scores"`
	Active         core.PlayerID `json:"active"`
	MovesRemaining int           `json:"moves_remaining"`
	MoveLimit      int           `json:"move_limit"`
	WinningScore   int           `json:"winning_score"`
	Combo          int           `json:"combo"`
	Turns          int           `json:"turns"`
	Status         Status        `json:"status"`
	Winner         core.PlayerID `json:"winner,omitempty"`
}

// Engine sequences turns of a two-player session. It is not safe for
// concurrent use; a single caller drives it.
type Engine struct {
	cfg      Config
	rng      *rand.Rand
	board    *Board
	resolver *Resolver

	scores    Scores
	active    core.PlayerID
	movesLeft int
	turns     int
	status    Status
	winner    core.PlayerID
	stalled   bool

	observers []func(Step)
}

// New validates cfg, deals a board and returns a ready engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	rng := rand.New(rand.NewSource(cfg.Seed))
	board, err := Generate(rng, cfg.Rows, cfg.Cols, cfg.Palette, cfg.MaxGenerationAttempts)
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, rng: rng, board: board}
	e.start()
	return e, nil
}

// NewWithBoard builds an engine around a prepared board instead of a dealt
// one. The board's dimensions override cfg.Rows and cfg.Cols. Every cell
// must hold a gem of the palette, and the board must be one Generate could
// deal: no run already lined up and at least one valid move.
func NewWithBoard(cfg Config, board *Board) (*Engine, error) {
	cfg.Rows, cfg.Cols = board.Dimensions()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	for r := range cfg.Rows {
		for c := range cfg.Cols {
			if t := board.Get(r, c); !t.IsGem(cfg.Palette) {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %v", ErrInvalidConfig, r, c, t)
			}
		}
	}
	switch {
	case HasAnyMatch(board):
		return nil, fmt.Errorf("%w: board already holds a run", ErrInvalidConfig)
	case !HasAnyValidMove(board):
		return nil, fmt.Errorf("%w: board has no valid move", ErrInvalidConfig)
	}

	e := &Engine{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		board: board.Clone(),
	}
	e.start()
	return e, nil
}

// start resets session state around the current board.
func (e *Engine) start() {
	e.resolver = NewResolver(e.board, e.rng, e.cfg)
	e.scores = Scores{}
	e.active = core.Player1
	e.movesLeft = e.cfg.MoveLimit
	e.turns = 0
	e.status = StatusOngoing
	e.winner = 0
	e.stalled = false
}

// Reset starts a new session, optionally with a different board shape.
// On error the engine keeps its previous state.
func (e *Engine) Reset(opts ResetOptions) error {
	cfg := e.cfg
	if opts.Rows > 0 {
		cfg.Rows = opts.Rows
	}
	if opts.Cols > 0 {
		cfg.Cols = opts.Cols
	}
	if opts.Palette > 0 {
		cfg.Palette = opts.Palette
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	board, err := Generate(e.rng, cfg.Rows, cfg.Cols, cfg.Palette, cfg.MaxGenerationAttempts)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.board = board
	e.start()
	e.emit([]Step{{Kind: StepDeal, Board: e.board.Clone()}})
	return nil
}

// Observe registers fn to receive every step of every accepted turn, in
// order, before SubmitMove returns.
func (e *Engine) Observe(fn func(Step)) {
	e.observers = append(e.observers, fn)
}

func (e *Engine) emit(steps []Step) {
	for _, s := range steps {
		for _, fn := range e.observers {
			fn(s)
		}
	}
}

// SubmitMove plays the swap a<->b for player. Invalid requests come back
// with Accepted=false and a Reason and leave the session untouched. An
// error is returned only when the board could not be brought back to a
// playable state; the engine then refuses further moves until Reset.
func (e *Engine) SubmitMove(player core.PlayerID, a, b Cell) (TurnOutcome, error) {
	if e.stalled {
		return TurnOutcome{}, ErrStalled
	}

	move := Move{A: a, B: b}
	if reason := e.check(player, move); reason != ReasonNone {
		return e.outcome(TurnOutcome{Reason: reason, Player: player, Move: move}), nil
	}

	res, err := e.resolver.ResolveSwap(move)
	e.scores.add(player, res.Points)
	e.emit(res.Steps)

	out := TurnOutcome{
		Accepted:   true,
		Player:     player,
		Move:       move,
		Points:     res.Points,
		Cleared:    res.Cleared,
		Passes:     res.Passes,
		Combo:      res.Combo,
		Reshuffled: res.Reshuffled,
		Steps:      res.Steps,
	}

	if err != nil {
		e.stalled = true
		return e.outcome(out), fmt.Errorf("turn %d: %w", e.turns+1, err)
	}

	e.endTurn(player, res)
	return e.outcome(out), nil
}

// check returns why move cannot be played, or ReasonNone.
func (e *Engine) check(player core.PlayerID, move Move) Reason {
	switch {
	case e.status.Over():
		return ReasonGameOver
	case player != e.active:
		return ReasonNotYourTurn
	case !e.board.InBounds(move.A) || !e.board.InBounds(move.B):
		return ReasonOutOfBounds
	case !IsAdjacent(e.board, move):
		return ReasonNotAdjacent
	case !WouldMatch(e.board, move):
		return ReasonNoMatch
	}
	return ReasonNone
}

// endTurn consumes a move, settles the status and passes the turn.
func (e *Engine) endTurn(player core.PlayerID, res Resolution) {
	e.turns++
	if e.cfg.MoveLimit > 0 {
		e.movesLeft--
	}

	switch e.cfg.Mode {
	case ModeMoves:
		switch {
		case e.scores.Of(player) >= e.cfg.WinningScore:
			e.status = StatusWin
			e.winner = player
		case e.movesLeft <= 0, res.Stalemate:
			e.status = StatusLose
		}
	default:
		switch {
		case e.scores.Of(player) >= e.cfg.WinningScore:
			e.finishDuel(player)
		case e.cfg.MoveLimit > 0 && e.movesLeft <= 0:
			switch {
			case e.scores.Player1 > e.scores.Player2:
				e.finishDuel(core.Player1)
			case e.scores.Player2 > e.scores.Player1:
				e.finishDuel(core.Player2)
			default:
				e.status = StatusDraw
			}
		}
	}

	if !e.status.Over() {
		e.active = player.Other()
	}
}

func (e *Engine) finishDuel(winner core.PlayerID) {
	e.winner = winner
	if winner == core.Player2 {
		e.status = StatusPlayer2Wins
	} else {
		e.status = StatusPlayer1Wins
	}
}

func (e *Engine) outcome(out TurnOutcome) TurnOutcome {
	out.Scores = e.scores
	out.Status = e.status
	out.NextPlayer = e.active
	out.MovesRemaining = e.MovesRemaining()
	return out
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Scores returns both players' totals.
func (e *Engine) Scores() Scores {
	return e.scores
}

// Status returns the session status.
func (e *Engine) Status() Status {
	return e.status
}

// Winner returns the winning player, or 0 while ongoing, on a draw or on
// a loss.
func (e *Engine) Winner() core.PlayerID {
	return e.winner
}

// ActivePlayer returns the player whose move is expected next.
func (e *Engine) ActivePlayer() core.PlayerID {
	return e.active
}

// MovesRemaining returns the shared move budget left, or -1 when the
// session has no move limit.
func (e *Engine) MovesRemaining() int {
	if e.cfg.MoveLimit == 0 {
		return -1
	}
	return e.movesLeft
}

// Combo returns the multiplier reached by the last chain.
func (e *Engine) Combo() int {
	return e.resolver.Combo()
}

// Turns returns the number of accepted moves this session.
func (e *Engine) Turns() int {
	return e.turns
}

// Stalled reports whether the engine needs a Reset.
func (e *Engine) Stalled() bool {
	return e.stalled
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Snapshot returns a copy of the full session state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Mode:           e.cfg.Mode,
		Board:          e.board.Clone(),
		Scores:         e.scores,
		Active:         e.active,
		MovesRemaining: e.MovesRemaining(),
		MoveLimit:      e.cfg.MoveLimit,
		WinningScore:   e.cfg.WinningScore,
		Combo:          e.resolver.Combo(),
		Turns:          e.turns,
		Status:         e.status,
		Winner:         e.winner,
	}
}
