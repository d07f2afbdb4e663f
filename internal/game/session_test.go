package game

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, s *Session, category string, value int, answer string) Result {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.SelectCategory(category))
	_, err := s.SelectValue(ctx, value)
	require.NoError(t, err)
	res, err := s.Answer(ctx, answer)
	require.NoError(t, err)
	return res
}

func TestSessionAdvancesThroughRounds(t *testing.T) {
	ctx := context.Background()
	s, err := NewSession(ctx, newFakeSource(), DefaultConfig(), 7, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	snap := s.Snapshot()
	assert.Equal(t, Regular, snap.Round)
	assert.Equal(t, AwaitingCategory, snap.State)
	require.Len(t, snap.Board, 2)
	assert.Equal(t, []string{"200", "400", "600", "800", "1000"}, snap.Board[0].Values)

	for _, c := range []string{"SCIENCE", "U.S. History"} {
		for _, v := range []int{200, 400, 600, 800, 1000} {
			play(t, s, c, v, answerFor(c, v))
		}
	}
	snap = s.Snapshot()
	assert.Equal(t, Double, snap.Round)
	assert.Equal(t, 6000, snap.Score)
	assert.Equal(t, []string{"400", "800", "1200", "1600", "2000"}, snap.Board[0].Values)

	for _, v := range []int{400, 800, 1200, 1600, 2000} {
		play(t, s, "POTENT POTABLES", v, "wrong")
	}
	snap = s.Snapshot()
	assert.Equal(t, Final, snap.Round)
	assert.Equal(t, AwaitingWager, snap.State)
	assert.Equal(t, 0, snap.Score)
	require.NotNil(t, snap.Final)
	assert.Empty(t, snap.Final.Question)
	assert.Equal(t, 0, snap.Final.MaxBid)

	assert.ErrorIs(t, s.SelectCategory("SCIENCE"), ErrWrongState)
	require.NoError(t, s.Wager(0))
	assert.Equal(t, "He wrote the Declaration", s.Snapshot().Final.Question)

	_, err = s.Answer(ctx, "Thomas Jefferson")
	require.NoError(t, err)
	assert.True(t, s.Done())
	_, err = s.Answer(ctx, "again")
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestSessionSnapshotShowsSelection(t *testing.T) {
	ctx := context.Background()
	s, err := NewSession(ctx, newFakeSource(), DefaultConfig(), 7, 0)
	require.NoError(t, err)

	require.NoError(t, s.SelectCategory("science"))
	snap := s.Snapshot()
	assert.Equal(t, AwaitingValue, snap.State)
	assert.Equal(t, []int{200, 400, 600, 800, 1000}, snap.Values)

	_, err = s.SelectValue(ctx, 600)
	require.NoError(t, err)
	snap = s.Snapshot()
	assert.Equal(t, "SCIENCE", snap.Category)
	require.NotNil(t, snap.Clue)
	assert.Equal(t, "Q SCIENCE", snap.Clue.Question)
	assert.Equal(t, "x", snap.Board[0].Values[2])
}

func TestSessionSourceFailureEndsGame(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	s, err := NewSession(ctx, src, DefaultConfig(), 7, 0)
	require.NoError(t, err)

	src.clueErr = errBoom
	require.NoError(t, s.SelectCategory("SCIENCE"))
	_, err = s.SelectValue(ctx, 200)
	assert.ErrorIs(t, err, errBoom)
	assert.True(t, s.Done())
}

func TestSessionConcurrentSnapshots(t *testing.T) {
	ctx := context.Background()
	s, err := NewSession(ctx, newFakeSource(), DefaultConfig(), 7, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			_ = s.Score()
		}()
	}
	play(t, s, "SCIENCE", 200, answerFor("SCIENCE", 200))
	wg.Wait()
	assert.Equal(t, 200, s.Score())
}
