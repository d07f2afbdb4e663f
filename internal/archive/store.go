// internal/archive/store.go
//
// Store is the SQLite-backed episode archive and score table.
// Responsibilities:
//   - Serve round content to the game engine (game.Source).
//   - Persist finished games (game.ScoreSink).
//   - Episode lookup: random, by air date, by id, by position (episode of the day).
//
// Category names are matched case-insensitively. Dates are stored as
// YYYY-MM-DD text; timestamps as RFC3339 text.

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jenopardy/jenopardy/internal/game"
)

const dateLayout = "2006-01-02"

var (
	// ErrNotFound is returned for missing episodes, clues, players and scores.
	ErrNotFound = game.ErrNotFound
	// ErrUsernameTaken rejects a duplicate username (case-insensitive).
	ErrUsernameTaken = errors.New("username taken")
)

// Store wraps the archive database.
type Store struct {
	db *sql.DB
}

// New wraps an already migrated database.
func New(db *sql.DB) *Store { return &Store{db: db} }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Episode is one archived show.
type Episode struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"` // YYYY-MM-DD
	Title string `json:"title"`
}

// ---------------------------------------------------------------------------
// game.Source

// Categories returns the category names of a round in board order.
func (s *Store) Categories(ctx context.Context, episodeID int64, kind game.RoundKind) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM categories
		WHERE episode_id=? AND round=?
		ORDER BY position, category_id`, episodeID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Clue fetches the clue stored under category and value in one round.
func (s *Store) Clue(ctx context.Context, episodeID int64, kind game.RoundKind, category string, value int) (game.Clue, error) {
	var c game.Clue
	err := s.db.QueryRowContext(ctx, `
		SELECT cl.question, cl.answer
		FROM clues cl
		JOIN categories c ON c.category_id = cl.category_id
		WHERE c.episode_id=? AND c.round=? AND lower(c.name)=lower(?) AND cl.money_value=?
		ORDER BY c.category_id, cl.clue_id
		LIMIT 1`, episodeID, string(kind), category, value).Scan(&c.Question, &c.Answer)
	if errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("clue %q/%d in episode %d round %s: %w", category, value, episodeID, kind, ErrNotFound)
	}
	return c, err
}

// FinalJeopardy returns the final round's category, question and answer.
func (s *Store) FinalJeopardy(ctx context.Context, episodeID int64) (game.FinalClue, error) {
	var f game.FinalClue
	err := s.db.QueryRowContext(ctx, `
		SELECT c.name, cl.question, cl.answer
		FROM categories c
		JOIN clues cl ON cl.category_id = c.category_id
		WHERE c.episode_id=? AND c.round=?
		ORDER BY c.position, cl.clue_id
		LIMIT 1`, episodeID, string(game.Final)).Scan(&f.Category, &f.Question, &f.Answer)
	if errors.Is(err, sql.ErrNoRows) {
		return f, fmt.Errorf("final round of episode %d: %w", episodeID, ErrNotFound)
	}
	return f, err
}

// ---------------------------------------------------------------------------
// game.ScoreSink

// WriteScore records a finished game.
func (s *Store) WriteScore(ctx context.Context, episodeID, userID int64, score int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO highscores (episode_id, player_id, score, earned_at)
		VALUES (?,?,?,?)`,
		episodeID, userID, score, time.Now().UTC().Format(time.RFC3339))
	return err
}

// ---------------------------------------------------------------------------
// episodes

func (s *Store) scanEpisode(row *sql.Row, what string) (Episode, error) {
	var e Episode
	err := row.Scan(&e.ID, &e.Date, &e.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("episode %s: %w", what, ErrNotFound)
	}
	return e, err
}

// RandomEpisode picks any archived episode.
func (s *Store) RandomEpisode(ctx context.Context) (Episode, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT episode_id, ep_date, ep_title FROM episodes
		ORDER BY RANDOM() LIMIT 1`)
	return s.scanEpisode(row, "(random)")
}

// EpisodeByDate finds the episode that aired on date.
func (s *Store) EpisodeByDate(ctx context.Context, date time.Time) (Episode, error) {
	key := date.Format(dateLayout)
	row := s.db.QueryRowContext(ctx, `
		SELECT episode_id, ep_date, ep_title FROM episodes
		WHERE ep_date=?
		ORDER BY episode_id LIMIT 1`, key)
	return s.scanEpisode(row, "aired "+key)
}

// Episode looks up an episode by id.
func (s *Store) Episode(ctx context.Context, id int64) (Episode, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT episode_id, ep_date, ep_title FROM episodes
		WHERE episode_id=?`, id)
	return s.scanEpisode(row, fmt.Sprint(id))
}

// EpisodeCount is the number of archived episodes.
func (s *Store) EpisodeCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM episodes`).Scan(&n)
	return n, err
}

// EpisodeAt returns the n-th episode (0-based) ordered by air date.
func (s *Store) EpisodeAt(ctx context.Context, n int) (Episode, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT episode_id, ep_date, ep_title FROM episodes
		ORDER BY ep_date, episode_id
		LIMIT 1 OFFSET ?`, n)
	return s.scanEpisode(row, fmt.Sprintf("#%d", n))
}

// HasTitle reports whether an episode with this title is archived.
func (s *Store) HasTitle(ctx context.Context, title string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM episodes WHERE ep_title=?`, title).Scan(&cnt)
	return cnt > 0, err
}
