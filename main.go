package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jenopardy/jenopardy/internal/httpserver"
	"github.com/jenopardy/jenopardy/internal/store"
)

const (
	releaseVersion = "1.0.0"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(ctx))
}

func runServe(ctx context.Context, cfg *Config) error {
	ar, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer ar.Close()

	mem := store.NewMemoryStore(cfg.sessionTTL)
	go mem.Run(ctx, time.Minute)

	srv := httpserver.New(mem, ar, httpserver.Config{
		ClientOrigin: cfg.clientOrigin,
		CookieName:   cfg.cookieName,
		SecureCookie: cfg.secureCookie,
		JWTSecret:    cfg.jwtSecret,
		JWTTTL:       time.Duration(cfg.jwtExpiresDays) * 24 * time.Hour,
		DailySalt:    cfg.dailySalt,
		Game:         cfg.game,
	})
	log.Info().Str("addr", cfg.addr()).Str("db", cfg.db).Msg("starting jenopardy api")
	return srv.Start(ctx, cfg.addr())
}

func runImport(ctx context.Context, cfg *Config, out io.Writer, files []string) error {
	ar, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer ar.Close()

	var imported, skipped int
	for _, f := range files {
		ok, err := ar.ImportFile(ctx, f, cfg.game)
		if err != nil {
			return fmt.Errorf("import %s: %w", f, err)
		}
		if ok {
			imported++
			fmt.Fprintf(out, "imported %s\n", f)
			continue
		}
		skipped++
		fmt.Fprintf(out, "skipped %s (already in archive)\n", f)
	}
	fmt.Fprintf(out, "%d imported, %d skipped\n", imported, skipped)
	return nil
}
