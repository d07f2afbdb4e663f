// internal/fuzzy/fuzzy.go
//
// Approximate string matching used for answer grading and category lookup.
// Provides:
//   - Ratio:          character-level similarity 0–100 over the raw strings.
//   - TokenSortRatio: similarity after normalizing, splitting on whitespace,
//                     sorting tokens and rejoining (word order does not matter).
//   - ExtractOne:     best-scoring candidate from a list.
//
// Similarity is the normalized insert/delete distance: 2·LCS / (len(a)+len(b)),
// scaled to a percentage and rounded half-to-even.

package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
)

// Ratio scores a against b without any preprocessing.
// Two empty strings are identical (100); one empty string scores 0.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	sim := float64(2*edlib.LCS(a, b)) / float64(total)
	return int(math.RoundToEven(sim * 100))
}

// TokenSortRatio compares the sorted, normalized tokens of a and b.
// Strings that normalize to nothing score 0.
func TokenSortRatio(a, b string) int {
	sa, sb := sortedTokens(a), sortedTokens(b)
	if sa == "" || sb == "" {
		return 0
	}
	return Ratio(sa, sb)
}

// Normalize keeps ASCII letters and digits, turns everything else into
// spaces, lowercases and trims.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			// non-ASCII runes are dropped
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteByte(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

func sortedTokens(s string) string {
	toks := strings.Fields(Normalize(s))
	sort.Strings(toks)
	return strings.Join(toks, " ")
}

// Match is a candidate picked by ExtractOne.
type Match struct {
	Choice string
	Index  int
	Score  int
}

// ExtractOne returns the best choice for query. A choice's score is the
// higher of Ratio over normalized text and TokenSortRatio. This is not
// thefuzz's WRatio: there is no partial matching and no length weighting.
// The earliest choice wins ties. There is no minimum score. ok is false
// only when choices is empty.
func ExtractOne(query string, choices []string) (m Match, ok bool) {
	q := Normalize(query)
	m.Index = -1
	for i, c := range choices {
		score := Ratio(q, Normalize(c))
		if ts := TokenSortRatio(query, c); ts > score {
			score = ts
		}
		if m.Index < 0 || score > m.Score {
			m = Match{Choice: c, Index: i, Score: score}
		}
	}
	return m, m.Index >= 0
}
