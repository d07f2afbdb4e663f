// internal/auth/accounts.go
//
// Account creation and login on top of the player table.

package auth

import (
	"context"
	"errors"

	"github.com/jenopardy/jenopardy/internal/archive"
)

var (
	// ErrUnknownUser is returned when no account has the username.
	ErrUnknownUser = errors.New("invalid username")
	// ErrBadPassword is returned when the password does not match.
	ErrBadPassword = errors.New("invalid password")
)

// PlayerStore is the subset of archive.Store used for accounts.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, username, passwordHash string) (archive.Player, error)
	PlayerByUsername(ctx context.Context, username string) (archive.Player, error)
}

// Accounts signs players up and logs them in.
type Accounts struct {
	Players PlayerStore
}

// Signup validates and creates an account. A taken username returns
// archive.ErrUsernameTaken.
func (a Accounts) Signup(ctx context.Context, username, password string) (archive.Player, error) {
	username = NormalizeUsername(username)
	if err := ValidateSignup(username, password); err != nil {
		return archive.Player{}, err
	}
	if _, err := a.Players.PlayerByUsername(ctx, username); err == nil {
		return archive.Player{}, archive.ErrUsernameTaken
	} else if !errors.Is(err, archive.ErrNotFound) {
		return archive.Player{}, err
	}
	h, err := HashPassword(password)
	if err != nil {
		return archive.Player{}, err
	}
	return a.Players.CreatePlayer(ctx, username, h)
}

// Login checks a username and password.
func (a Accounts) Login(ctx context.Context, username, password string) (archive.Player, error) {
	p, err := a.Players.PlayerByUsername(ctx, NormalizeUsername(username))
	if errors.Is(err, archive.ErrNotFound) {
		return archive.Player{}, ErrUnknownUser
	}
	if err != nil {
		return archive.Player{}, err
	}
	if !CheckPassword(p.PasswordHash, password) {
		return archive.Player{}, ErrBadPassword
	}
	return p, nil
}
