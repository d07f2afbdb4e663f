// internal/daily/daily.go
//
// Episode of the day.
// The same date and salt always pick the same archive position, so every
// player gets the same episode on a given UTC day without any stored state.

package daily

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jenopardy/jenopardy/internal/archive"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as the modulus input
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Episodes is the part of the archive the picker needs.
type Episodes interface {
	EpisodeCount(ctx context.Context) (int, error)
	EpisodeAt(ctx context.Context, n int) (archive.Episode, error)
}

// Picker selects the episode of the day.
type Picker struct {
	Episodes Episodes
	Salt     string
}

// Pick returns the episode for the UTC day containing now.
func (p Picker) Pick(ctx context.Context, now time.Time) (archive.Episode, error) {
	n, err := p.Episodes.EpisodeCount(ctx)
	if err != nil {
		return archive.Episode{}, err
	}
	if n == 0 {
		return archive.Episode{}, fmt.Errorf("daily episode: empty archive: %w", archive.ErrNotFound)
	}
	return p.Episodes.EpisodeAt(ctx, Index(now, p.Salt, n))
}
