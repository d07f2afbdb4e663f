package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenopardy/jenopardy/internal/game"
)

func TestParseFileName(t *testing.T) {
	cases := []struct {
		name  string
		title string
		date  string
	}{
		{"Show #4680 - Monday, December 6, 2004.json", "Show #4680", "2004-12-06"},
		{"dumps/Show #1 - Monday, September 10, 1984.json", "Show #1", "1984-09-10"},
		{"Tournament - Game 2 - Friday, May 3, 2019.json", "Tournament - Game 2", "2019-05-03"},
	}
	for _, tc := range cases {
		title, date, err := ParseFileName(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.title, title)
		assert.Equal(t, tc.date, date.Format(dateLayout))
	}

	for _, bad := range []string{"episode.json", "Show #1 - someday.json", " - Monday, December 6, 2004.json"} {
		_, _, err := ParseFileName(bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}

func TestParseDocumentOrder(t *testing.T) {
	data := []byte(`[
		{"ZEBRA": {"q1": "a1", "q2": "a2"}, "APPLE": {"q3": "a3"}},
		{"MIDDLE": {"q4": "a4"}},
		{"LAST": {"fq": "fa"}}
	]`)
	doc, err := ParseDocument("Show #9 - Tuesday, March 2, 1999.json", data)
	require.NoError(t, err)

	assert.Equal(t, "Show #9", doc.Title)
	assert.Equal(t, time.Date(1999, 3, 2, 0, 0, 0, 0, time.UTC), doc.Date)
	require.Len(t, doc.Rounds[0], 2)
	assert.Equal(t, "ZEBRA", doc.Rounds[0][0].Name)
	assert.Equal(t, []ClueData{{"q1", "a1"}, {"q2", "a2"}}, doc.Rounds[0][0].Clues)
	assert.Equal(t, "APPLE", doc.Rounds[0][1].Name)
	assert.Equal(t, "LAST", doc.Rounds[2][0].Name)
}

func TestParseDocumentObjectFormOverridesFileName(t *testing.T) {
	data := []byte(`{"title": "Custom", "date": "2020-02-29", "rounds": [{}, {}, {"F": {"q": "a"}}]}`)
	doc, err := ParseDocument("whatever.json", data)
	require.NoError(t, err)
	assert.Equal(t, "Custom", doc.Title)
	assert.Equal(t, "2020-02-29", doc.Date.Format(dateLayout))
}

func TestParseDocumentRejectsMalformed(t *testing.T) {
	name := "Show #1 - Monday, September 10, 1984.json"
	for _, data := range []string{
		`not json`,
		`[{}, {}]`,
		`[{}, {}, {}]`,
		`[{}, [], {"F": {"q": "a"}}]`,
		`{"title": "x", "date": "10/09/1984", "rounds": []}`,
		`{"title": "x", "rounds": "nope"}`,
	} {
		_, err := ParseDocument(name, []byte(data))
		assert.ErrorIs(t, err, ErrMalformed, data)
	}
}

func TestImportFileAssignsValuesByPosition(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	file := filepath.Join(t.TempDir(), "Show #7 - Wednesday, June 5, 2002.json")
	body := `[
		{"CAT": {"one": "1", "two": "2", "three": "3", "four": "4", "five": "5", "six": "6"}},
		{"DOUBLE": {"d1": "x", "d2": "y"}},
		{"FINAL": {"fq": "fa"}}
	]`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))

	added, err := s.ImportFile(ctx, file, game.DefaultConfig())
	require.NoError(t, err)
	require.True(t, added)

	ep, err := s.EpisodeByDate(ctx, time.Date(2002, 6, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	c, err := s.Clue(ctx, ep.ID, game.Regular, "cat", 1000)
	require.NoError(t, err)
	assert.Equal(t, "five", c.Question)

	c, err = s.Clue(ctx, ep.ID, game.Double, "double", 800)
	require.NoError(t, err)
	assert.Equal(t, "d2", c.Question)

	_, err = s.Clue(ctx, ep.ID, game.Final, "final", 4000)
	require.NoError(t, err)

	added, err = s.ImportFile(ctx, file, game.DefaultConfig())
	require.NoError(t, err)
	assert.False(t, added)
}
