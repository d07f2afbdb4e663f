// internal/game/session.go
//
// Session chains the rounds of one game for callers that are not line-driven
// (the HTTP API). It owns the current Round or FinalRound and advances
// Regular → Double → Final as each one ends. Methods are safe for concurrent
// use; actions are applied one at a time.

package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one game in progress.
type Session struct {
	ID        string
	EpisodeID int64
	UserID    int64 // 0 for guests
	CreatedAt time.Time

	mu    sync.Mutex
	src   Source
	cfg   Config
	kind  RoundKind
	round *Round
	final *FinalRound
	score int
	done  bool
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID        string     `json:"gameId"`
	EpisodeID int64      `json:"episodeId"`
	Round     RoundKind  `json:"round"`
	State     State      `json:"state"`
	Score     int        `json:"score"`
	Done      bool       `json:"done"`
	Board     []Column   `json:"board,omitempty"`
	Category  string     `json:"category,omitempty"`
	Values    []int      `json:"values,omitempty"`
	Clue      *Clue      `json:"clue,omitempty"`
	Final     *FinalView `json:"final,omitempty"`
}

// Column is one category of the board as shown to a client.
type Column struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// FinalView is the client view of the final round.
type FinalView struct {
	Category string `json:"category"`
	Question string `json:"question,omitempty"`
	MaxBid   int    `json:"maxBid"`
	Bid      int    `json:"bid"`
}

// NewSession starts a game at the Regular round.
func NewSession(ctx context.Context, src Source, cfg Config, episodeID, userID int64) (*Session, error) {
	r, err := NewRound(ctx, src, cfg, episodeID, Regular, 0)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        uuid.NewString(),
		EpisodeID: episodeID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		src:       src,
		cfg:       cfg,
		kind:      Regular,
		round:     r,
	}, nil
}

// Done reports whether the final round has been answered.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Score is the running score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// SelectCategory forwards to the current board round.
func (s *Session) SelectCategory(input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round == nil {
		return ErrWrongState
	}
	return s.round.SelectCategory(input)
}

// SelectValue forwards to the current board round.
func (s *Session) SelectValue(ctx context.Context, value int) (Clue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round == nil {
		return Clue{}, ErrWrongState
	}
	clue, err := s.round.SelectValue(ctx, value)
	if s.round.Err() != nil {
		s.done = true
	}
	return clue, err
}

// Wager forwards to the final round.
func (s *Session) Wager(bid int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.final == nil {
		return ErrWrongState
	}
	return s.final.Wager(bid)
}

// Answer grades an answer in whichever round is current and advances to the
// next round when this one ends.
func (s *Session) Answer(ctx context.Context, submitted string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return Result{}, ErrRoundOver
	}

	if s.final != nil {
		res, err := s.final.Answer(submitted)
		if err != nil {
			return res, err
		}
		s.score = res.Score
		s.done = true
		return res, nil
	}

	res, err := s.round.Answer(submitted)
	if err != nil {
		return res, err
	}
	s.score = res.Score
	if s.round.State() == Over {
		if err := s.advance(ctx); err != nil {
			s.done = true
			return res, err
		}
	}
	return res, nil
}

func (s *Session) advance(ctx context.Context) error {
	switch s.kind {
	case Regular:
		r, err := NewRound(ctx, s.src, s.cfg, s.EpisodeID, Double, s.score)
		if err != nil {
			return err
		}
		s.kind, s.round = Double, r
	case Double:
		f, err := NewFinal(ctx, s.src, s.cfg, s.EpisodeID, s.score)
		if err != nil {
			return err
		}
		s.kind, s.round, s.final = Final, nil, f
	}
	return nil
}

// Snapshot returns the client view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.ID,
		EpisodeID: s.EpisodeID,
		Round:     s.kind,
		Score:     s.score,
		Done:      s.done,
	}
	switch {
	case s.final != nil:
		snap.State = s.final.State()
		fv := &FinalView{Category: s.final.Category(), MaxBid: s.final.MaxBid(), Bid: s.final.Bid()}
		if q, err := s.final.Question(); err == nil {
			fv.Question = q
		}
		snap.Final = fv
	case s.round != nil:
		snap.State = s.round.State()
		for _, c := range s.round.Board() {
			col := Column{Name: c.Name, Values: make([]string, len(c.Values))}
			for i, slot := range c.Values {
				col.Values[i] = slot.String()
			}
			snap.Board = append(snap.Board, col)
		}
		if snap.State == AwaitingValue {
			snap.Values = s.round.ValidValues()
		}
		if clue, err := s.round.Clue(); err == nil {
			snap.Category, _ = s.round.Selection()
			snap.Clue = &clue
		}
	}
	return snap
}
