package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jenopardy/jenopardy/internal/board"
)

// fakeSource serves generated clues: the answer to (category, value) is
// "<category> <value>" in lowercase words.
type fakeSource struct {
	categories map[RoundKind][]string
	final      FinalClue
	clueErr    error
	finalErr   error
	fetches    []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		categories: map[RoundKind][]string{
			Regular: {"SCIENCE", "U.S. History"},
			Double:  {"POTENT POTABLES"},
		},
		final: FinalClue{Category: "PRESIDENTS", Question: "He wrote the Declaration", Answer: "Thomas Jefferson"},
	}
}

func answerFor(category string, value int) string {
	return fmt.Sprintf("%s number %d", strings.ToLower(category), value)
}

func (f *fakeSource) Categories(_ context.Context, _ int64, kind RoundKind) ([]string, error) {
	return append([]string(nil), f.categories[kind]...), nil
}

func (f *fakeSource) Clue(_ context.Context, _ int64, _ RoundKind, category string, value int) (Clue, error) {
	f.fetches = append(f.fetches, fmt.Sprintf("%s/%d", category, value))
	if f.clueErr != nil {
		return Clue{}, f.clueErr
	}
	return Clue{Question: "Q " + category, Answer: answerFor(category, value)}, nil
}

func (f *fakeSource) FinalJeopardy(context.Context, int64) (FinalClue, error) {
	if f.finalErr != nil {
		return FinalClue{}, f.finalErr
	}
	return f.final, nil
}

type scoreRecord struct {
	episode, user int64
	score         int
}

type fakeSink struct {
	written []scoreRecord
	err     error
}

func (s *fakeSink) WriteScore(_ context.Context, episodeID, userID int64, score int) error {
	s.written = append(s.written, scoreRecord{episodeID, userID, score})
	return s.err
}

// script feeds prepared lines and reports io.EOF when it runs dry.
type script struct {
	lines   []string
	prompts []string
}

func (s *script) Prompt(label string) (string, error) {
	s.prompts = append(s.prompts, label)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

type recorder struct {
	said     []string
	boards   int
	finals   []string
	verdicts []Result
}

func (r *recorder) Say(format string, args ...any) { r.said = append(r.said, fmt.Sprintf(format, args...)) }
func (r *recorder) Board([]board.Category, int)    { r.boards++ }
func (r *recorder) Final(category, question string, _ int) {
	r.finals = append(r.finals, category+": "+question)
}
func (r *recorder) Verdict(res Result) { r.verdicts = append(r.verdicts, res) }

func (r *recorder) saidLine(s string) bool {
	for _, l := range r.said {
		if l == s {
			return true
		}
	}
	return false
}

var errBoom = errors.New("boom")
