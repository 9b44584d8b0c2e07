package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DuelResult is the outcome of one finished gem duel.
type DuelResult struct {
	ID        int64
	MatchID   string // generated when empty
	GameID    string
	Mode      string // "duel" or "moves"
	Opponent  string // "hotseat" or "cpu"
	Score1    int
	Score2    int
	Winner    int    // 1 or 2, 0 for a draw or a loss
	Status    string // engine status name
	Turns     int
	Duration  int // seconds
	CreatedAt time.Time
}

// DuelStats aggregates the duel history of a game.
type DuelStats struct {
	GameID    string
	Played    int
	P1Wins    int
	P2Wins    int
	NoWinner  int
	BestScore int
	AvgTurns  float64
}

const duelColumns = `id, match_id, game_id, mode, opponent, score1, score2,
	winner, status, turns, duration_secs, created_at`

// SaveDuel records a finished duel and returns its match ID.
func (s *Store) SaveDuel(r DuelResult) (string, error) {
	if r.MatchID == "" {
		r.MatchID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO duels
		 (match_id, game_id, mode, opponent, score1, score2, winner, status, turns, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID,
		r.GameID,
		r.Mode,
		r.Opponent,
		r.Score1,
		r.Score2,
		r.Winner,
		r.Status,
		r.Turns,
		r.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save duel: %w", err)
	}

	return r.MatchID, nil
}

// DuelByID retrieves a duel by its match ID. Returns nil if none exists.
func (s *Store) DuelByID(matchID string) (*DuelResult, error) {
	row := s.db.QueryRow(
		`SELECT `+duelColumns+` FROM duels WHERE match_id = ?`,
		matchID,
	)

	r, err := scanDuel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duel: %w", err)
	}
	return &r, nil
}

// RecentDuels retrieves the most recent duels, newest first. An empty
// gameID returns duels of every variant.
func (s *Store) RecentDuels(gameID string, limit int) ([]DuelResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+duelColumns+`
		 FROM duels
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duels: %w", err)
	}
	defer rows.Close()

	var results []DuelResult
	for rows.Next() {
		r, err := scanDuel(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// GetDuelStats aggregates the duel history of a game.
func (s *Store) GetDuelStats(gameID string) (*DuelStats, error) {
	stats := &DuelStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(winner = 1), 0),
		        COALESCE(SUM(winner = 2), 0),
		        COALESCE(SUM(winner = 0), 0),
		        COALESCE(MAX(MAX(score1, score2)), 0),
		        COALESCE(AVG(turns), 0)
		 FROM duels WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Played, &stats.P1Wins, &stats.P2Wins, &stats.NoWinner, &stats.BestScore, &stats.AvgTurns)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get duel stats: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDuel(row rowScanner) (DuelResult, error) {
	var r DuelResult
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.MatchID,
		&r.GameID,
		&r.Mode,
		&r.Opponent,
		&r.Score1,
		&r.Score2,
		&r.Winner,
		&r.Status,
		&r.Turns,
		&r.Duration,
		&createdAt,
	)
	if err != nil {
		return DuelResult{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}
