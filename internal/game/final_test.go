package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFinal(t *testing.T, score int) *FinalRound {
	t.Helper()
	f, err := NewFinal(context.Background(), newFakeSource(), DefaultConfig(), 7, score)
	require.NoError(t, err)
	return f
}

func TestFinalOverBidRejectedThenWrongAnswer(t *testing.T) {
	f := newFinal(t, 1000)
	assert.Equal(t, "PRESIDENTS", f.Category())

	_, err := f.Question()
	assert.ErrorIs(t, err, ErrWrongState, "question stays hidden until the wager is in")

	err = f.Wager(1200)
	assert.ErrorIs(t, err, ErrBidOverScore)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, AwaitingWager, f.State())

	require.NoError(t, f.Wager(500))
	q, err := f.Question()
	require.NoError(t, err)
	assert.Equal(t, "He wrote the Declaration", q)

	res, err := f.Answer("Benjamin Franklin")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 500, res.Value)
	assert.Equal(t, "Thomas Jefferson", res.Answer)
	assert.Equal(t, 500, f.Score())
	assert.Equal(t, Over, f.State())
}

func TestFinalCorrectAnswerAddsBid(t *testing.T) {
	f := newFinal(t, 1000)
	require.NoError(t, f.Wager(1000))

	res, err := f.Answer("thomas  JEFFERSON")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 2000, f.Score())
}

func TestFinalBidBounds(t *testing.T) {
	f := newFinal(t, 300)
	assert.ErrorIs(t, f.Wager(-1), ErrNegativeBid)
	assert.ErrorIs(t, f.Wager(301), ErrBidOverScore)
	require.NoError(t, f.Wager(300))
	assert.Equal(t, 300, f.Bid())
	assert.ErrorIs(t, f.Wager(10), ErrWrongState)
}

func TestFinalWithNonPositiveScoreOnlyAcceptsZero(t *testing.T) {
	for _, score := range []int{0, -2400} {
		f := newFinal(t, score)
		assert.Equal(t, 0, f.MaxBid())
		assert.ErrorIs(t, f.Wager(1), ErrBidOverScore)
		require.NoError(t, f.Wager(0))

		_, err := f.Answer("no clue")
		require.NoError(t, err)
		assert.Equal(t, score, f.Score())
	}
}

func TestFinalAnswerOrdering(t *testing.T) {
	f := newFinal(t, 100)
	_, err := f.Answer("early")
	assert.ErrorIs(t, err, ErrWrongState)

	require.NoError(t, f.Wager(0))
	_, err = f.Answer("Thomas Jefferson")
	require.NoError(t, err)

	_, err = f.Answer("again")
	assert.ErrorIs(t, err, ErrRoundOver)
	assert.ErrorIs(t, f.Wager(0), ErrRoundOver)
}

func TestNewFinalSourceFailure(t *testing.T) {
	src := newFakeSource()
	src.finalErr = ErrNotFound

	_, err := NewFinal(context.Background(), src, DefaultConfig(), 7, 0)
	var se *SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "final", se.Op)
	assert.ErrorIs(t, err, ErrNotFound)
}
