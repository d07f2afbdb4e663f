// internal/game/host.go
//
// Prompt-driven play of a full game on top of Round and FinalRound.
// Responsibilities:
//   - Drive the round state machines from line input, re-prompting on any
//     invalid input (non-numbers, unknown categories, unavailable values,
//     out-of-range bids, empty answers).
//   - Chain Regular → Double → Final with the score handed from one to the next.
//   - Report the final score to the ScoreSink (failures are logged, not retried).
//   - Debug mode skips each round and takes the score to use from input.
//
// Input errors from the Prompter (EOF, aborted prompt) end play and are returned.

package game

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jenopardy/jenopardy/internal/board"
)

// Prompter reads one line of input after showing label.
type Prompter interface {
	Prompt(label string) (string, error)
}

// Presenter renders game output.
type Presenter interface {
	Say(format string, args ...any)
	Board(categories []board.Category, score int)
	Final(category, question string, score int)
	Verdict(res Result)
}

// Host plays games against a Source, talking to one player.
type Host struct {
	Source Source
	Scores ScoreSink
	Config Config
	In     Prompter
	Out    Presenter
	Debug  bool
}

const nullWarning = `NOTE: If you are asked a question that begins with "null", the answer is the exact text of the question.
This is because the question is missing from the archive, and the selected value is a placeholder.`

// PlayGame plays both board rounds and the final round of an episode,
// then records the final score for userID.
func (h *Host) PlayGame(ctx context.Context, episodeID, userID int64) (int, error) {
	h.Out.Say("%s", nullWarning)
	h.Out.Say("Let's begin our first round...")
	score, err := h.PlayRound(ctx, episodeID, Regular, 0)
	if err != nil {
		return score, err
	}
	h.Out.Say("Your score is %d - it's time for Double Jeopardy!", score)
	score, err = h.PlayRound(ctx, episodeID, Double, score)
	if err != nil {
		return score, err
	}
	h.Out.Say("Great job! Your score after Double Jeopardy is %d", score)
	h.Out.Say("It's time for Final Jeopardy...")
	score, err = h.PlayFinal(ctx, episodeID, score)
	if err != nil {
		return score, err
	}

	if h.Scores != nil {
		if err := h.Scores.WriteScore(ctx, episodeID, userID, score); err != nil {
			log.Error().Err(err).Int64("episode", episodeID).Int64("user", userID).Int("score", score).Msg("write score")
		}
	}
	h.Out.Say("Your final score is %d!", score)
	h.Out.Say("Thanks for playing!")
	return score, nil
}

// PlayRound plays a Regular or Double round until every category is spent
// and returns the running score.
func (h *Host) PlayRound(ctx context.Context, episodeID int64, kind RoundKind, score int) (int, error) {
	if h.Debug {
		return h.askInt("How much do you want your score to be? ")
	}

	r, err := NewRound(ctx, h.Source, h.Config, episodeID, kind, score)
	if err != nil {
		return score, err
	}
	for r.State() != Over {
		h.Out.Board(r.Board(), r.Score())
		if err := h.chooseCategory(r); err != nil {
			return r.Score(), err
		}
		clue, err := h.chooseValue(ctx, r)
		if err != nil {
			return r.Score(), err
		}
		h.Out.Say("%s", clue.Question)
		answer, err := h.askText("What is... ")
		if err != nil {
			return r.Score(), err
		}
		res, err := r.Answer(answer)
		if err != nil {
			return r.Score(), err
		}
		h.Out.Verdict(res)
	}
	return r.Score(), nil
}

// PlayFinal plays the final round and returns the final score.
func (h *Host) PlayFinal(ctx context.Context, episodeID int64, score int) (int, error) {
	if h.Debug {
		amount, err := h.askInt("How much do you want your score to be? ")
		if err != nil {
			return score, err
		}
		h.Out.Final("COLORS THAT END IN URPLE", "Suck it, Trebek!", score)
		return amount, nil
	}

	f, err := NewFinal(ctx, h.Source, h.Config, episodeID, score)
	if err != nil {
		return score, err
	}
	h.Out.Say("The category is %s!", f.Category())
	for f.State() == AwaitingWager {
		bid, err := h.askInt("How much would you like to bid? ")
		if err != nil {
			return score, err
		}
		switch err := f.Wager(bid); {
		case errors.Is(err, ErrBidOverScore):
			h.Out.Say("You can only bid up to your current score!")
		case errors.Is(err, ErrNegativeBid):
			h.Out.Say("You can't bid a negative number!")
		case err != nil:
			return score, err
		}
	}

	question, _ := f.Question()
	h.Out.Final(f.Category(), question, score)
	answer, err := h.askText("What is... ")
	if err != nil {
		return score, err
	}
	res, err := f.Answer(answer)
	if err != nil {
		return score, err
	}
	h.Out.Verdict(res)
	return f.Score(), nil
}

func (h *Host) chooseCategory(r *Round) error {
	for {
		in, err := h.In.Prompt("Choose a category: ")
		if err != nil {
			return err
		}
		err = r.SelectCategory(in)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrInvalidInput) {
			return err
		}
		h.Out.Say("Invalid category! (Try copy and pasting!)")
	}
}

func (h *Host) chooseValue(ctx context.Context, r *Round) (Clue, error) {
	for {
		v, err := h.askInt("What value of clue? ")
		if err != nil {
			return Clue{}, err
		}
		clue, err := r.SelectValue(ctx, v)
		var invalid *InvalidValueError
		if errors.As(err, &invalid) {
			h.Out.Say("Valid values are:")
			for _, valid := range invalid.Valid {
				h.Out.Say("%d", valid)
			}
			continue
		}
		return clue, err
	}
}

func (h *Host) askInt(label string) (int, error) {
	for {
		in, err := h.In.Prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(in))
		if err == nil {
			return n, nil
		}
		h.Out.Say("You must enter a number!")
	}
}

func (h *Host) askText(label string) (string, error) {
	for {
		in, err := h.In.Prompt(label)
		if err != nil {
			return "", err
		}
		if s := strings.TrimSpace(in); s != "" {
			return s, nil
		}
	}
}
