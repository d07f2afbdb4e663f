package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenopardy/jenopardy/internal/game"
)

func TestFlagsReadEnvironment(t *testing.T) {
	t.Setenv("JENOPARDY_PORT", "6060")
	t.Setenv("JENOPARDY_ADMIN_ID", "7")
	t.Setenv("JENOPARDY_SESSION_TTL", "30m")

	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, 6060, cfg.port)
	assert.Equal(t, int64(7), cfg.adminID)
	assert.Equal(t, 30*time.Minute, cfg.sessionTTL)
	assert.Equal(t, "./data/jenopardy.db", cfg.db)
	assert.Equal(t, game.DefaultConfig(), cfg.game)
	assert.Equal(t, "0.0.0.0:6060", cfg.addr())
	require.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, cfg.validate())

	cfg.port = 0
	assert.Error(t, cfg.validate())

	cfg = testConfig(t)
	cfg.db = ""
	assert.Error(t, cfg.validate())

	cfg = testConfig(t)
	cfg.jwtExpiresDays = 0
	assert.Error(t, cfg.validate())
}

const dump = `[
  {"OPERA": {"q1": "a1", "q2": "a2", "q3": "a3", "q4": "a4", "q5": "a5"}},
  {"BALLET": {"q6": "a6", "q7": "a7", "q8": "a8", "q9": "a9", "q10": "a10"}},
  {"COMPOSERS": {"He wrote nine symphonies": "Beethoven"}}
]`

func TestImportCommand(t *testing.T) {
	cfg := testConfig(t)
	file := filepath.Join(t.TempDir(), "Test Show - Monday, January 1, 2024.json")
	require.NoError(t, os.WriteFile(file, []byte(dump), 0o644))

	var out bytes.Buffer
	require.NoError(t, runImport(context.Background(), cfg, &out, []string{file}))
	assert.Contains(t, out.String(), "1 imported, 0 skipped")

	out.Reset()
	require.NoError(t, runImport(context.Background(), cfg, &out, []string{file}))
	assert.Contains(t, out.String(), "0 imported, 1 skipped")

	ar, err := openArchive(context.Background(), cfg)
	require.NoError(t, err)
	defer ar.Close()
	n, err := ar.EpisodeCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	ep, err := ar.EpisodeByDate(context.Background(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Test Show", ep.Title)
	f, err := ar.FinalJeopardy(context.Background(), ep.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beethoven", f.Answer)

	missing := filepath.Join(t.TempDir(), "nope.json")
	assert.Error(t, runImport(context.Background(), cfg, &out, []string{missing}))
}
