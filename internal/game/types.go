// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - RoundKind and the per-game Config (denominations, grading threshold).
//   - Clue / FinalClue as fetched from the data source.
//   - Source and ScoreSink: the collaborators the engine consumes.
//   - Error taxonomy shared by the round, final and host layers.

package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jenopardy/jenopardy/internal/board"
	"github.com/jenopardy/jenopardy/internal/grader"
)

// RoundKind names a round of an episode. Values match the data source.
type RoundKind string

const (
	Regular RoundKind = "Regular"
	Double  RoundKind = "Double"
	Final   RoundKind = "Final"
)

// Config is the explicit game configuration handed to every round.
type Config struct {
	Regular   board.Denominations
	Double    board.Denominations
	FinalSlot int // value the final clue is stored under
	Threshold int // grading acceptance bar (exclusive)
}

// DefaultConfig returns the classic board.
func DefaultConfig() Config {
	return Config{
		Regular:   board.Denominations{200, 400, 600, 800, 1000},
		Double:    board.Denominations{400, 800, 1200, 1600, 2000},
		FinalSlot: 4000,
		Threshold: grader.DefaultThreshold,
	}
}

// Denominations returns the template for a board round.
func (c Config) Denominations(kind RoundKind) (board.Denominations, error) {
	switch kind {
	case Regular:
		return c.Regular, nil
	case Double:
		return c.Double, nil
	}
	return board.Denominations{}, fmt.Errorf("round %q has no board: %w", kind, ErrInvalidInput)
}

// Clue is a question and its canonical answer.
type Clue struct {
	Question string `json:"question"`
	Answer   string `json:"-"`
}

// FinalClue is the single clue of the final round.
type FinalClue struct {
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"-"`
}

// Source supplies round content. Implementations may block on I/O.
type Source interface {
	// Categories returns canonical category names in board order.
	Categories(ctx context.Context, episodeID int64, kind RoundKind) ([]string, error)
	// Clue fetches the clue stored under category and value in the given round.
	Clue(ctx context.Context, episodeID int64, kind RoundKind, category string, value int) (Clue, error)
	// FinalJeopardy fetches the final round's category, question and answer.
	FinalJeopardy(ctx context.Context, episodeID int64) (FinalClue, error)
}

// ScoreSink persists a finished game's score.
type ScoreSink interface {
	WriteScore(ctx context.Context, episodeID, userID int64, score int) error
}

// ---------------------------------------------------------------------------
// errors

var (
	// ErrNotFound is board.ErrNotFound, re-exported for callers of this package.
	ErrNotFound = board.ErrNotFound
	// ErrInvalidInput marks user input that should be re-prompted.
	ErrInvalidInput = errors.New("invalid input")
	// ErrWrongState is returned when an action does not fit the current state.
	ErrWrongState = errors.New("action not allowed in current state")
	// ErrRoundOver is returned for actions on a finished round.
	ErrRoundOver = errors.New("round is over")
)

// SourceError wraps a data source failure. It ends the round it occurs in.
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string { return "data source: " + e.Op + ": " + e.Err.Error() }
func (e *SourceError) Unwrap() error { return e.Err }

// InvalidValueError reports a value that is not on the chosen category.
type InvalidValueError struct {
	Value int
	Valid []int
}

func (e *InvalidValueError) Error() string {
	vals := make([]string, len(e.Valid))
	for i, v := range e.Valid {
		vals[i] = strconv.Itoa(v)
	}
	return fmt.Sprintf("value %d not available (valid: %s)", e.Value, strings.Join(vals, ", "))
}

func (e *InvalidValueError) Unwrap() error { return ErrInvalidInput }
