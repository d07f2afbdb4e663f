// internal/auth/auth.go
//
// Password and token helpers shared by the console and the HTTP API.
// Responsibilities:
//   - Username/password rules for new accounts.
//   - bcrypt hashing and verification.
//   - HS256 JWTs carrying the player's id and username.

package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned for unparseable, expired or incomplete tokens.
var ErrInvalidToken = errors.New("invalid token")

// ValidationError describes a rejected username or password. Its text is
// safe to show to the player.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// NormalizeUsername trims whitespace.
func NormalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// ValidateSignup enforces the account rules: 3-24 characters of letters,
// digits or underscore, and a password of 8-100 characters.
func ValidateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return ValidationError("username must be 3-24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ValidationError("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return ValidationError("password must be 8-100 chars")
	}
	return nil
}

// HashPassword returns a bcrypt hash at the default cost.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword is a bcrypt verifier.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// ---- tokens ----

// Claims identifies the player behind a token.
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Signer issues and verifies tokens.
type Signer struct {
	Secret []byte
	TTL    time.Duration
}

// Sign creates a token for the player and reports when it expires.
func (s Signer) Sign(id int64, username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       strconv.FormatInt(id, 10),
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString(s.Secret)
	return ss, exp, err
}

// Parse verifies a token and returns its claims.
func (s Signer) Parse(token string) (Claims, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return Claims{}, ErrInvalidToken
	}
	rawID, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 || username == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{ID: id, Username: username}, nil
}
