// config.go
//
// Command tree and configuration for the jenopardy binary.
// Responsibilities:
//   - Root command plays the console game; `serve` runs the JSON API;
//     `import` loads scraped episode dumps into the archive.
//   - Every flag is also read from JENOPARDY_<FLAG> (dashes become underscores),
//     after .env has been loaded.
//   - Logging setup shared by all commands.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jenopardy/jenopardy/internal/game"
)

type Config struct {
	db             string
	adminID        int64
	bind           string
	port           int
	jwtSecret      string
	jwtExpiresDays int
	cookieName     string
	secureCookie   bool
	clientOrigin   string
	dailySalt      string
	sessionTTL     time.Duration
	logLevel       string
	verbose        bool

	game game.Config
}

func (c *Config) validate() error {
	if c.db == "" {
		return errors.New("--db must not be empty")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.jwtExpiresDays < 1 {
		return fmt.Errorf("invalid --jwt-expires-days: %d", c.jwtExpiresDays)
	}
	return nil
}

func (c *Config) addr() string {
	return fmt.Sprintf("%s:%d", c.bind, c.port)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("JENOPARDY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg.game = game.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "jenopardy",
		Short: "A single-player Jeopardy game for the console, built from archived episodes.",
		Args:  cobra.ExactArgs(0),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			setupLogging(cfg, cmd.Name() == "jenopardy")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), cfg)
		},
		Version: releaseVersion,
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.db, "db", "./data/jenopardy.db", "path to the SQLite archive (env: JENOPARDY_DB)")
	fs.Int64Var(&cfg.adminID, "admin-id", 1, "player id allowed into the admin menu (env: JENOPARDY_ADMIN_ID)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: JENOPARDY_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 5175, "port to listen on (env: JENOPARDY_PORT)")
	fs.StringVar(&cfg.jwtSecret, "jwt-secret", "dev_secret_change_me", "secret for API tokens (env: JENOPARDY_JWT_SECRET)")
	fs.IntVar(&cfg.jwtExpiresDays, "jwt-expires-days", 14, "API token lifetime in days (env: JENOPARDY_JWT_EXPIRES_DAYS)")
	fs.StringVar(&cfg.cookieName, "cookie-name", "jenopardy_token", "name of the auth cookie (env: JENOPARDY_COOKIE_NAME)")
	fs.BoolVar(&cfg.secureCookie, "secure-cookie", false, "mark the auth cookie Secure and SameSite=None (env: JENOPARDY_SECURE_COOKIE)")
	fs.StringVar(&cfg.clientOrigin, "client-origin", "http://localhost:5173", "origin allowed by CORS (env: JENOPARDY_CLIENT_ORIGIN)")
	fs.StringVar(&cfg.dailySalt, "daily-salt", "local_dev_salt", "salt for the episode of the day (env: JENOPARDY_DAILY_SALT)")
	fs.DurationVar(&cfg.sessionTTL, "session-ttl", 6*time.Hour, "time before unfinished API games are dropped (env: JENOPARDY_SESSION_TTL)")
	fs.StringVar(&cfg.logLevel, "log-level", "", "log level; defaults to warn on the console and info elsewhere (env: JENOPARDY_LOG_LEVEL)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log at debug level (env: JENOPARDY_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(newServeCmd(cfg), newImportCmd(cfg))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("jenopardy v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func newServeCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game as a JSON API.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
}

func newImportCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>...",
		Short: "Import scraped episode dumps into the archive.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cfg, cmd.OutOrStdout(), args)
		},
	}
}

// setupLogging applies the configured level. The console keeps logs on
// stderr and quiet by default so they don't interleave with the game.
func setupLogging(cfg *Config, console bool) {
	level := cfg.logLevel
	if level == "" {
		level = "info"
		if console {
			level = "warn"
		}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if cfg.verbose {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
