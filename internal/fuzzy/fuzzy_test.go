package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"this is a test", "this is a test", 100},
		{"this is a test", "this is a test!", 97},
		{"kitten", "sitting", 62},
		{"fuzzy wuzzy was a bear", "wuzzy fuzzy was a bear", 91},
		{"paris", "rome", 22},
		{"", "", 100},
		{"abc", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.a+"|"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.want, Ratio(tc.a, tc.b))
			assert.Equal(t, tc.want, Ratio(tc.b, tc.a), "ratio should be symmetric")
		})
	}
}

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 100, TokenSortRatio("fuzzy wuzzy was a bear", "wuzzy fuzzy was a bear"))
	assert.Equal(t, 100, TokenSortRatio("Thomas Jefferson", "jefferson, THOMAS"))
	assert.Equal(t, 0, TokenSortRatio("???", "anything"))
	assert.Less(t, TokenSortRatio("paris", "rome"), 50)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "the u s  navy", Normalize("  The U.S. Navy!! "))
	assert.Equal(t, "caf", Normalize("Café"))
	assert.Equal(t, "snake_case 42", Normalize("snake_case-42"))
}

func TestExtractOne(t *testing.T) {
	choices := []string{"SCIENCE", "U.S. HISTORY", "POTENT POTABLES", "WORLD CAPITALS"}

	m, ok := ExtractOne("u.s. history", choices)
	require.True(t, ok)
	assert.Equal(t, "U.S. HISTORY", m.Choice)
	assert.Equal(t, 1, m.Index)
	assert.Equal(t, 100, m.Score)

	m, ok = ExtractOne("potant potables", choices)
	require.True(t, ok)
	assert.Equal(t, "POTENT POTABLES", m.Choice)

	m, ok = ExtractOne("capitals world", choices)
	require.True(t, ok)
	assert.Equal(t, "WORLD CAPITALS", m.Choice)

	_, ok = ExtractOne("anything", nil)
	assert.False(t, ok)
}

func TestExtractOneAlwaysPicksSomething(t *testing.T) {
	m, ok := ExtractOne("zzzz", []string{"ABC", "DEF"})
	require.True(t, ok)
	assert.Equal(t, "ABC", m.Choice)
	assert.Equal(t, 0, m.Score)
}

func TestExtractOneHasNoPartialMatching(t *testing.T) {
	m, ok := ExtractOne("science", []string{"SCIENCE & NATURE"})
	require.True(t, ok)
	assert.Equal(t, TokenSortRatio("science", "SCIENCE & NATURE"), m.Score)
	assert.Equal(t, 67, m.Score)
}
