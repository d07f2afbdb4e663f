// db.go
//
// Archive bootstrap for the jenopardy binary.
// Responsibilities:
//   - Opening the SQLite archive at the configured path (migrations applied
//     from the embedded assets/sql/*.sql, see internal/archive).
//   - Seeding the bundled sample episodes into an empty archive so a fresh
//     install is playable before any scrape has been imported.

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jenopardy/jenopardy/assets"
	"github.com/jenopardy/jenopardy/internal/archive"
)

/**
 * openArchive opens (and creates if missing) the episode archive.
 *
 * - Applies any pending migrations.
 * - Imports the embedded sample episodes when the archive has none.
 */
func openArchive(ctx context.Context, cfg *Config) (*archive.Store, error) {
	ar, err := archive.Open(ctx, cfg.db, assets.Migrations())
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", cfg.db, err)
	}
	if err := seedArchive(ctx, ar, cfg); err != nil {
		_ = ar.Close()
		return nil, err
	}
	return ar, nil
}

// seedArchive imports the bundled episodes into an empty archive.
func seedArchive(ctx context.Context, ar *archive.Store, cfg *Config) error {
	n, err := ar.EpisodeCount(ctx)
	if err != nil {
		return fmt.Errorf("count episodes: %w", err)
	}
	if n > 0 {
		return nil
	}
	added, err := ar.ImportFS(ctx, assets.Episodes(), cfg.game)
	if err != nil {
		return fmt.Errorf("seed sample episodes: %w", err)
	}
	log.Info().Int("episodes", added).Msg("seeded empty archive with sample episodes")
	return nil
}
