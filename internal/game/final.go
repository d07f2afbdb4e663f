// internal/game/final.go
//
// Final round: one category, one clue, one wager.
//   awaiting_wager → awaiting_answer → over
//
// The bid may be anything from 0 to the current score. A player who arrives
// with a score of zero or less can only bid 0.

package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jenopardy/jenopardy/internal/grader"
)

var (
	// ErrBidOverScore rejects a bid above the current score.
	ErrBidOverScore = fmt.Errorf("%w: bid exceeds current score", ErrInvalidInput)
	// ErrNegativeBid rejects a bid below zero.
	ErrNegativeBid = fmt.Errorf("%w: bid is negative", ErrInvalidInput)
)

// FinalRound is the final round of an episode.
type FinalRound struct {
	EpisodeID int64

	grader grader.Grader
	clue   FinalClue
	score  int
	bid    int
	state  State
}

// NewFinal fetches the final clue for the episode.
func NewFinal(ctx context.Context, src Source, cfg Config, episodeID int64, score int) (*FinalRound, error) {
	clue, err := src.FinalJeopardy(ctx, episodeID)
	if err != nil {
		return nil, &SourceError{Op: "final", Err: err}
	}
	return &FinalRound{
		EpisodeID: episodeID,
		grader:    grader.New(cfg.Threshold),
		clue:      clue,
		score:     score,
		state:     AwaitingWager,
	}, nil
}

// Category is shown before wagering.
func (f *FinalRound) Category() string { return f.clue.Category }

// Question is only available once the wager is in.
func (f *FinalRound) Question() (string, error) {
	if f.state == AwaitingWager {
		return "", ErrWrongState
	}
	return f.clue.Question, nil
}

// Score is the current score (final once the round is over).
func (f *FinalRound) Score() int { return f.score }

// Bid is the accepted wager.
func (f *FinalRound) Bid() int { return f.bid }

// MaxBid is the largest acceptable wager.
func (f *FinalRound) MaxBid() int { return max(f.score, 0) }

// State reports where the round is.
func (f *FinalRound) State() State { return f.state }

// Wager records the bid. Rejected bids leave the round unchanged.
func (f *FinalRound) Wager(bid int) error {
	switch {
	case f.state == Over:
		return ErrRoundOver
	case f.state != AwaitingWager:
		return ErrWrongState
	case bid < 0:
		return ErrNegativeBid
	case bid > f.MaxBid():
		return ErrBidOverScore
	}
	f.bid = bid
	f.state = AwaitingAnswer
	return nil
}

// Answer grades the submission and settles the wager.
func (f *FinalRound) Answer(submitted string) (Result, error) {
	switch f.state {
	case Over:
		return Result{}, ErrRoundOver
	case AwaitingWager:
		return Result{}, ErrWrongState
	}
	verdict := f.grader.Grade(f.clue.Answer, submitted)
	if verdict == grader.Correct {
		f.score += f.bid
	} else {
		f.score -= f.bid
	}
	f.state = Over
	log.Debug().Int64("episode", f.EpisodeID).Int("bid", f.bid).Stringer("verdict", verdict).Int("score", f.score).Msg("final graded")
	return Result{
		Verdict:  verdict,
		Correct:  verdict == grader.Correct,
		Category: f.clue.Category,
		Value:    f.bid,
		Answer:   f.clue.Answer,
		Score:    f.score,
	}, nil
}
