// internal/archive/players.go
//
// Player accounts and high score queries.

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Player is an account row.
type Player struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ScoreRow is a high score joined with its player and episode.
type ScoreRow struct {
	ID           int64     `json:"id"`
	PlayerID     int64     `json:"playerId"`
	Username     string    `json:"username"`
	Score        int       `json:"score"`
	EpisodeTitle string    `json:"episodeTitle"`
	EpisodeDate  string    `json:"episodeDate"`
	EarnedAt     time.Time `json:"earnedAt"`
}

// CreatePlayer inserts a new account. The hash is stored as given.
func (s *Store) CreatePlayer(ctx context.Context, username, passwordHash string) (Player, error) {
	p := Player{
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO players (username, password_hash, created_at) VALUES (?,?,?)`,
		p.Username, p.PasswordHash, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return Player{}, ErrUsernameTaken
		}
		return Player{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

// PlayerByUsername finds an account, ignoring case.
func (s *Store) PlayerByUsername(ctx context.Context, username string) (Player, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, username, password_hash, created_at
		FROM players WHERE username=?`, strings.TrimSpace(username))
	return scanPlayer(row, username)
}

// PlayerByID finds an account by id.
func (s *Store) PlayerByID(ctx context.Context, id int64) (Player, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, username, password_hash, created_at
		FROM players WHERE user_id=?`, id)
	return scanPlayer(row, fmt.Sprint(id))
}

func scanPlayer(row *sql.Row, what string) (Player, error) {
	var p Player
	var created string
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("player %s: %w", what, ErrNotFound)
	}
	p.CreatedAt = mustParse(created)
	return p, err
}

// Players lists every account by id.
func (s *Store) Players(ctx context.Context) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, username, password_hash, created_at
		FROM players ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Player
	for rows.Next() {
		var p Player
		var created string
		if err := rows.Scan(&p.ID, &p.Username, &p.PasswordHash, &created); err != nil {
			return nil, err
		}
		p.CreatedAt = mustParse(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePlayer removes an account and all of its scores.
func (s *Store) DeletePlayer(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM highscores WHERE player_id=?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM players WHERE user_id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

// ---------------------------------------------------------------------------
// scores

const scoreSelect = `
	SELECT h.score_id, p.user_id, p.username, h.score, e.ep_title, e.ep_date, h.earned_at
	FROM highscores h
	JOIN players p ON p.user_id = h.player_id
	JOIN episodes e ON e.episode_id = h.episode_id`

func (s *Store) queryScores(ctx context.Context, query string, args ...any) ([]ScoreRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ScoreRow{}
	for rows.Next() {
		var r ScoreRow
		var earned string
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.Username, &r.Score, &r.EpisodeTitle, &r.EpisodeDate, &earned); err != nil {
			return nil, err
		}
		r.EarnedAt = mustParse(earned)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Leaderboard returns the top scores across all players, best first.
// limit defaults to 10.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]ScoreRow, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(ctx, scoreSelect+`
		ORDER BY h.score DESC, h.score_id ASC
		LIMIT ?`, limit)
}

// ScoresByPlayer returns a player's best scores. limit defaults to 10.
func (s *Store) ScoresByPlayer(ctx context.Context, playerID int64, limit int) ([]ScoreRow, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(ctx, scoreSelect+`
		WHERE h.player_id=?
		ORDER BY h.score DESC, h.score_id ASC
		LIMIT ?`, playerID, limit)
}

// Scores lists every score by id.
func (s *Store) Scores(ctx context.Context) ([]ScoreRow, error) {
	return s.queryScores(ctx, scoreSelect+` ORDER BY h.score_id`)
}

// ScoreByID finds a single score.
func (s *Store) ScoreByID(ctx context.Context, id int64) (ScoreRow, error) {
	rows, err := s.queryScores(ctx, scoreSelect+` WHERE h.score_id=?`, id)
	if err != nil {
		return ScoreRow{}, err
	}
	if len(rows) == 0 {
		return ScoreRow{}, fmt.Errorf("score %d: %w", id, ErrNotFound)
	}
	return rows[0], nil
}

// DeleteScore removes one score.
func (s *Store) DeleteScore(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM highscores WHERE score_id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("score %d: %w", id, ErrNotFound)
	}
	return nil
}

// mustParse parses RFC3339 timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// HasScore reports whether the player has finished the episode before.
func (s *Store) HasScore(ctx context.Context, playerID, episodeID int64) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM highscores WHERE player_id=? AND episode_id=?`,
		playerID, episodeID,
	).Scan(&cnt)
	return cnt > 0, err
}
