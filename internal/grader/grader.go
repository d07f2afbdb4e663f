// internal/grader/grader.go
//
// Free-text answer grading.
// A submission is correct when either the plain ratio or the token-sorted
// ratio against the canonical answer is strictly above the threshold. Both
// sides are lowercased first, so grading never depends on case.

package grader

import (
	"strings"

	"github.com/jenopardy/jenopardy/internal/fuzzy"
)

// DefaultThreshold is the acceptance bar; a score must exceed it.
const DefaultThreshold = 80

// Verdict is the outcome of grading one answer.
type Verdict int

const (
	Incorrect Verdict = iota
	Correct
)

func (v Verdict) String() string {
	if v == Correct {
		return "correct"
	}
	return "incorrect"
}

// Scores holds both similarity measures for a graded answer.
type Scores struct {
	Ratio     int
	TokenSort int
}

// Grader grades answers against a fixed threshold.
type Grader struct {
	Threshold int
}

// New returns a Grader using threshold, or DefaultThreshold when threshold <= 0.
func New(threshold int) Grader {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Grader{Threshold: threshold}
}

// Grade compares submitted against canonical.
func (g Grader) Grade(canonical, submitted string) Verdict {
	v, _ := g.Score(canonical, submitted)
	return v
}

// Score grades and also reports the two similarity scores.
func (g Grader) Score(canonical, submitted string) (Verdict, Scores) {
	c := strings.ToLower(strings.TrimSpace(canonical))
	s := strings.ToLower(strings.TrimSpace(submitted))
	sc := Scores{
		Ratio:     fuzzy.Ratio(c, s),
		TokenSort: fuzzy.TokenSortRatio(c, s),
	}
	if sc.Ratio > g.Threshold || sc.TokenSort > g.Threshold {
		return Correct, sc
	}
	return Incorrect, sc
}
