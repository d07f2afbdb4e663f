package grader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	g := New(0)

	cases := []struct {
		name      string
		canonical string
		submitted string
		want      Verdict
	}{
		{"verbatim", "Thomas Jefferson", "Thomas Jefferson", Correct},
		{"word order", "Thomas Jefferson", "Jefferson Thomas", Correct},
		{"case", "the Mississippi River", "THE MISSISSIPPI RIVER", Correct},
		{"typo", "Mississippi", "Missisippi", Correct},
		{"wrong city", "Paris", "Rome", Incorrect},
		{"partial", "Abraham Lincoln", "Lincoln", Incorrect},
		{"empty", "Paris", "", Incorrect},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.Grade(tc.canonical, tc.submitted))
		})
	}
}

func TestGradeIsCaseInsensitive(t *testing.T) {
	g := New(DefaultThreshold)
	for _, pair := range [][2]string{
		{"George Washington", "george washington"},
		{"Rome", "PARIS"},
		{"a tale of two cities", "A Tale Of 2 Cities"},
	} {
		assert.Equal(t, g.Grade(pair[0], pair[1]), g.Grade(pair[0], "  "+pair[1]+" "))
		assert.Equal(t, g.Grade(pair[0], pair[1]), g.Grade(pair[0], swapCase(pair[1])))
	}
}

func TestThresholdIsStrict(t *testing.T) {
	// "abcde" vs "abcdefghij" scores exactly 2*5/15 = 67.
	_, sc := New(0).Score("abcde", "abcdefghij")
	assert.Equal(t, 67, sc.Ratio)

	assert.Equal(t, Incorrect, New(67).Grade("abcde", "abcdefghij"))
	assert.Equal(t, Correct, New(66).Grade("abcde", "abcdefghij"))
}

func swapCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z':
			out[i] = r - 32
		case r >= 'A' && r <= 'Z':
			out[i] = r + 32
		}
	}
	return string(out)
}
