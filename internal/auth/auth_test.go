package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenopardy/jenopardy/assets"
	"github.com/jenopardy/jenopardy/internal/archive"
)

func TestValidateSignup(t *testing.T) {
	cases := []struct {
		user, pass string
		ok         bool
	}{
		{"alice", "password1", true},
		{"a_b_9", "12345678", true},
		{"al", "password1", false},
		{"this_name_is_far_too_long_", "password1", false},
		{"bad name", "password1", false},
		{"émile", "password1", false},
		{"alice", "short", false},
	}
	for _, tc := range cases {
		err := ValidateSignup(tc.user, tc.pass)
		if tc.ok {
			assert.NoError(t, err, tc.user)
			continue
		}
		var ve ValidationError
		assert.ErrorAs(t, err, &ve, tc.user)
	}
}

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", h)
	assert.True(t, CheckPassword(h, "correct horse"))
	assert.False(t, CheckPassword(h, "wrong horse"))
}

func TestTokenRoundTrip(t *testing.T) {
	s := Signer{Secret: []byte("test-secret"), TTL: time.Hour}

	tok, exp, err := s.Sign(42, "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	c, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, Claims{ID: 42, Username: "alice"}, c)

	_, err = Signer{Secret: []byte("other")}.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := Signer{Secret: s.Secret, TTL: -time.Hour}.Sign(42, "alice")
	require.NoError(t, err)
	_, err = s.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	st, err := archive.Open(ctx, filepath.Join(t.TempDir(), "auth.db"), assets.Migrations())
	require.NoError(t, err)
	defer st.Close()
	a := Accounts{Players: st}

	p, err := a.Signup(ctx, "  carol ", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "carol", p.Username)

	_, err = a.Signup(ctx, "Carol", "hunter2hunter2")
	assert.ErrorIs(t, err, archive.ErrUsernameTaken)

	_, err = a.Signup(ctx, "dave", "short")
	var ve ValidationError
	assert.ErrorAs(t, err, &ve)

	got, err := a.Login(ctx, "carol", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = a.Login(ctx, "carol", "nope")
	assert.ErrorIs(t, err, ErrBadPassword)
	_, err = a.Login(ctx, "nobody", "whatever1")
	assert.ErrorIs(t, err, ErrUnknownUser)
}
