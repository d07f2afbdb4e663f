// internal/game/round.go
//
// Round engine for a Regular or Double round.
// Responsibilities:
//   - Build the board from the episode's categories and the round template.
//   - Validate category selection (exact, case-insensitive) against the
//     categories that are still offerable.
//   - Validate value selection, resolve the canonical category name, spend the
//     value and fetch the clue.
//   - Grade the answer, move the score and decide whether the round is over.
//
// State transitions:
//   awaiting_category → awaiting_value → awaiting_answer → (awaiting_category | over)
//
// A data source failure while fetching a clue ends the round; Err reports it.

package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jenopardy/jenopardy/internal/board"
	"github.com/jenopardy/jenopardy/internal/fuzzy"
	"github.com/jenopardy/jenopardy/internal/grader"
)

// State is a coarse position in a round's state machine.
type State string

const (
	AwaitingCategory State = "awaiting_category"
	AwaitingValue    State = "awaiting_value"
	AwaitingWager    State = "awaiting_wager"
	AwaitingAnswer   State = "awaiting_answer"
	Over             State = "over"
)

// Result is the outcome of one graded answer.
type Result struct {
	Verdict  grader.Verdict `json:"-"`
	Correct  bool           `json:"correct"`
	Category string         `json:"category"`
	Value    int            `json:"value"`  // clue value, or the bid in the final round
	Answer   string         `json:"answer"` // canonical answer
	Score    int            `json:"score"`  // running score after grading
}

// Round is one Regular or Double round of an episode.
type Round struct {
	EpisodeID int64
	Kind      RoundKind

	src    Source
	grader grader.Grader
	board  *board.Board
	live   []string // canonical names still offerable, in board order
	score  int
	state  State
	err    error

	selected string // lowercased selection
	category string // canonical name of the selection
	value    int
	clue     Clue
}

// NewRound fetches the round's categories and builds its board.
// score is the running score carried in from the previous round.
func NewRound(ctx context.Context, src Source, cfg Config, episodeID int64, kind RoundKind, score int) (*Round, error) {
	tmpl, err := cfg.Denominations(kind)
	if err != nil {
		return nil, err
	}
	names, err := src.Categories(ctx, episodeID, kind)
	if err != nil {
		return nil, &SourceError{Op: "categories", Err: err}
	}
	if len(names) == 0 {
		return nil, &SourceError{Op: "categories", Err: fmt.Errorf("episode %d round %s: %w", episodeID, kind, ErrNotFound)}
	}

	b := board.New(names, tmpl)
	live := make([]string, 0, len(names))
	for _, c := range b.Categories() {
		live = append(live, c.Name)
	}
	return &Round{
		EpisodeID: episodeID,
		Kind:      kind,
		src:       src,
		grader:    grader.New(cfg.Threshold),
		board:     b,
		live:      live,
		score:     score,
		state:     AwaitingCategory,
	}, nil
}

// Board returns a snapshot of every category, spent slots included.
func (r *Round) Board() []board.Category { return r.board.Categories() }

// Offerable lists the categories that can still be selected.
func (r *Round) Offerable() []string { return append([]string(nil), r.live...) }

// Score is the running score.
func (r *Round) Score() int { return r.score }

// State reports where the round is.
func (r *Round) State() State { return r.state }

// Err is the data source error that ended the round, if any.
func (r *Round) Err() error { return r.err }

// Selection returns the canonical category (once resolved) and value in play.
func (r *Round) Selection() (category string, value int) { return r.category, r.value }

// Clue returns the clue awaiting an answer.
func (r *Round) Clue() (Clue, error) {
	if r.state != AwaitingAnswer {
		return Clue{}, ErrWrongState
	}
	return r.clue, nil
}

// SelectCategory accepts free text that must equal an offerable category,
// ignoring case. Nothing changes on rejection.
func (r *Round) SelectCategory(input string) error {
	if err := r.expect(AwaitingCategory); err != nil {
		return err
	}
	sel := strings.ToLower(strings.TrimSpace(input))
	for _, name := range r.live {
		if strings.ToLower(name) == sel {
			r.selected = sel
			r.state = AwaitingValue
			return nil
		}
	}
	return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input)
}

// ValidValues lists the values still available in the selected category.
func (r *Round) ValidValues() []int {
	if r.selected == "" {
		return nil
	}
	vs, err := r.board.ValueSet(r.selected)
	if err != nil {
		return nil
	}
	return vs.Remaining()
}

// SelectValue spends value in the selected category and fetches its clue.
// An unavailable value returns *InvalidValueError and leaves the round as is.
func (r *Round) SelectValue(ctx context.Context, value int) (Clue, error) {
	if err := r.expect(AwaitingValue); err != nil {
		return Clue{}, err
	}
	vs, err := r.board.ValueSet(r.selected)
	if err != nil {
		return Clue{}, err
	}
	if !vs.Contains(value) {
		return Clue{}, &InvalidValueError{Value: value, Valid: vs.Remaining()}
	}

	category := r.resolve(r.selected)
	if err := r.board.RemoveValue(category, value); err != nil {
		return Clue{}, err
	}
	if done, _ := r.board.ShouldRemoveCategory(category); done {
		r.drop(category)
	}
	r.category, r.value = category, value

	clue, err := r.src.Clue(ctx, r.EpisodeID, r.Kind, category, value)
	if err != nil {
		r.state = Over
		r.err = &SourceError{Op: "clue", Err: err}
		log.Error().Err(err).Int64("episode", r.EpisodeID).Str("category", category).Int("value", value).Msg("fetch clue")
		return Clue{}, r.err
	}
	r.clue = clue
	r.state = AwaitingAnswer
	return clue, nil
}

// Answer grades the submission and applies the value to the score.
// Negative scores are kept as they are.
func (r *Round) Answer(submitted string) (Result, error) {
	if err := r.expect(AwaitingAnswer); err != nil {
		return Result{}, err
	}
	verdict := r.grader.Grade(r.clue.Answer, submitted)
	if verdict == grader.Correct {
		r.score += r.value
	} else {
		r.score -= r.value
	}
	res := Result{
		Verdict:  verdict,
		Correct:  verdict == grader.Correct,
		Category: r.category,
		Value:    r.value,
		Answer:   r.clue.Answer,
		Score:    r.score,
	}
	log.Debug().Int64("episode", r.EpisodeID).Str("round", string(r.Kind)).Str("category", r.category).
		Int("value", r.value).Stringer("verdict", verdict).Int("score", r.score).Msg("graded")

	r.selected, r.clue = "", Clue{}
	if r.board.AnyCategoryValid() {
		r.state = AwaitingCategory
	} else {
		r.state = Over
	}
	return res, nil
}

// resolve recovers the canonical casing of a selection. The board's
// case-insensitive index covers every well-formed selection; the closest
// offerable name is the fallback.
func (r *Round) resolve(sel string) string {
	if name, ok := r.board.Canonical(sel); ok {
		return name
	}
	if m, ok := fuzzy.ExtractOne(sel, r.live); ok {
		return m.Choice
	}
	return sel
}

func (r *Round) drop(category string) {
	for i, name := range r.live {
		if name == category {
			r.live = append(r.live[:i], r.live[i+1:]...)
			return
		}
	}
}

func (r *Round) expect(s State) error {
	if r.state == Over {
		return ErrRoundOver
	}
	if r.state != s {
		return fmt.Errorf("%w: %s (expected %s)", ErrWrongState, r.state, s)
	}
	return nil
}
