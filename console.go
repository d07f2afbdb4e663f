// console.go
//
// The console front end.
// Responsibilities:
//   - Intro splash, then log in or create an account.
//   - Main menu: play, leaderboard, personal stats, credits, quit,
//     and an unlisted admin entry (6) for the configured admin id.
//   - Choosing the episode to play (by air date, at random, or the episode
//     of the day) and handing it to game.Host.
//
// Input errors (EOF, Ctrl-C) end the session quietly.

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"

	"github.com/jenopardy/jenopardy/internal/archive"
	"github.com/jenopardy/jenopardy/internal/auth"
	"github.com/jenopardy/jenopardy/internal/daily"
	"github.com/jenopardy/jenopardy/internal/game"
)

// errQuit is returned by the main menu once the player confirms quitting.
var errQuit = errors.New("quit")

const splash = `

     ___  _______  __    _  _______  _______  _______  ______    ______   __   __  __
    |   ||       ||  |  | ||       ||       ||   _   ||    _ |  |      | |  | |  ||  |
    |   ||    ___||   |_| ||   _   ||    _  ||  |_|  ||   | ||  |  _    ||  |_|  ||  |
    |   ||   |___ |       ||  | |  ||   |_| ||       ||   |_||_ | | |   ||       ||  |
 ___|   ||    ___||  _    ||  |_|  ||    ___||       ||    __  || |_|   ||_     _||__|
|       ||   |___ | | |   ||       ||   |    |   _   ||   |  | ||       |  |   |   __
|_______||_______||_|  |__||_______||___|    |__| |__||___|  |_||______|   |___|  |__|

`

const welcome = `
Welcome to Jenopardy, a single-player Jeopardy experience. Play by selecting a category, then a value.
At the end, see how you stack up to others who have played on the leaderboard!

(Press ENTER to continue)
`

const loginMenu = `
What do you want to do?

1. Log in
2. Create account
`

const mainMenu = `
What would you like to do?

1. Play a game
2. Check leaderboard
3. View user stats
4. Credits
5. Quit
`

const credits = `
Enormous thanks to j-archive.com, whose work made this project possible.
Logo courtesy of the ASCII Art Generator by Patrick Gillespie at http://patorjk.com/blog/software/
Dedicated to Alex Trebek.`

const dateLayout = "2006-01-02"

type console struct {
	ar       *archive.Store
	term     *terminal
	accounts auth.Accounts
	picker   daily.Picker
	cfg      game.Config
	adminID  int64
	now      func() time.Time
}

func newConsole(ar *archive.Store, term *terminal, cfg *Config) *console {
	return &console{
		ar:       ar,
		term:     term,
		accounts: auth.Accounts{Players: ar},
		picker:   daily.Picker{Episodes: ar, Salt: cfg.dailySalt},
		cfg:      cfg.game,
		adminID:  cfg.adminID,
		now:      time.Now,
	}
}

func runConsole(ctx context.Context, cfg *Config) error {
	ar, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer ar.Close()

	in := newLinerInput()
	defer in.Close()

	err = newConsole(ar, &terminal{in: in, out: os.Stdout}, cfg).Run(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		return nil
	}
	return err
}

// Run plays the intro, logs the player in and loops on the main menu.
func (c *console) Run(ctx context.Context) error {
	if _, err := c.term.Prompt("Press ENTER to begin"); err != nil {
		return err
	}
	if _, err := c.term.Prompt(splash + welcome); err != nil {
		return err
	}
	player, err := c.login(ctx)
	if err != nil {
		return err
	}
	for {
		err := c.menu(ctx, player)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// login loops until the player has logged in or created an account.
func (c *console) login(ctx context.Context) (archive.Player, error) {
	choice, err := c.askInt(loginMenu)
	if err != nil {
		return archive.Player{}, err
	}
	for {
		if choice != 1 && choice != 2 {
			c.term.Say("You must choose either 1 or 2!")
			if choice, err = c.askInt(loginMenu); err != nil {
				return archive.Player{}, err
			}
			continue
		}

		username, err := c.term.Prompt("Enter your username: ")
		if err != nil {
			return archive.Player{}, err
		}
		password, err := c.term.PasswordPrompt("Enter your password: ")
		if err != nil {
			return archive.Player{}, err
		}

		if choice == 1 {
			p, err := c.accounts.Login(ctx, username, password)
			switch {
			case err == nil:
				c.term.Say("\nLogged in as %s", p.Username)
				return p, nil
			case errors.Is(err, auth.ErrUnknownUser):
				c.term.Say("Invalid username!")
			case errors.Is(err, auth.ErrBadPassword):
				c.term.Say("Incorrect password!")
			default:
				return archive.Player{}, err
			}
			if choice, err = c.askInt("Try again (1) or create a new account (2)? "); err != nil {
				return archive.Player{}, err
			}
			continue
		}

		p, err := c.accounts.Signup(ctx, username, password)
		var invalid auth.ValidationError
		switch {
		case err == nil:
			c.term.Say("Created an account for %s!", p.Username)
			return p, nil
		case errors.Is(err, archive.ErrUsernameTaken):
			c.term.Say("Username already exists!")
			if choice, err = c.askInt("Log in (1) or try again (2)? "); err != nil {
				return archive.Player{}, err
			}
		case errors.As(err, &invalid):
			c.term.Say("%s", invalid.Error())
		default:
			return archive.Player{}, err
		}
	}
}

// menu shows the main menu once and runs the chosen entry.
func (c *console) menu(ctx context.Context, player archive.Player) error {
	choice, err := c.askInt(mainMenu)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return c.play(ctx, player.ID, false)
	case 2:
		return c.leaderboard(ctx)
	case 3:
		return c.profile(ctx, player)
	case 4:
		c.term.Say("%s", credits)
		return nil
	case 5:
		return c.quit()
	case 6:
		if player.ID == c.adminID {
			return c.admin(ctx, player)
		}
		c.term.Say("Incorrect admin account")
		return nil
	}
	c.term.Say("Please enter a number between 1 and 5!")
	return nil
}

// play picks an episode and plays it through. A data source failure ends
// the game and returns to the menu.
func (c *console) play(ctx context.Context, userID int64, debug bool) error {
	ep, err := c.chooseEpisode(ctx)
	if errors.Is(err, archive.ErrNotFound) {
		c.term.Say("There are no episodes in the archive yet. Import some with `jenopardy import`.")
		return nil
	}
	if err != nil {
		return err
	}
	c.term.Say("Selected episode %s!", ep.Title)

	host := &game.Host{
		Source: c.ar,
		Scores: c.ar,
		Config: c.cfg,
		In:     c.term,
		Out:    c.term,
		Debug:  debug,
	}
	_, err = host.PlayGame(ctx, ep.ID, userID)
	var src *game.SourceError
	if errors.As(err, &src) {
		log.Error().Err(err).Int64("episode", ep.ID).Msg("game aborted")
		c.term.Say("Something went wrong loading this episode. Returning to menu...")
		return nil
	}
	return err
}

// chooseEpisode asks which episode to play.
func (c *console) chooseEpisode(ctx context.Context) (archive.Episode, error) {
	choice, err := c.term.Prompt("Do you want to start with a specific game? Y/N (D for the episode of the day) ")
	if err != nil {
		return archive.Episode{}, err
	}
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "y":
		return c.episodeByDate(ctx)
	case "n":
		return c.ar.RandomEpisode(ctx)
	case "d":
		return c.picker.Pick(ctx, c.now())
	}
	c.term.Say("Invalid response, getting random game...")
	return c.ar.RandomEpisode(ctx)
}

// episodeByDate prompts until a date with an episode is given. A blank
// line gives up and picks at random.
func (c *console) episodeByDate(ctx context.Context) (archive.Episode, error) {
	for {
		in, err := c.term.Prompt("Please enter episode date (format yyyy-mm-dd): ")
		if err != nil {
			return archive.Episode{}, err
		}
		in = strings.TrimSpace(in)
		if in == "" {
			c.term.Say("No date given, getting random game...")
			return c.ar.RandomEpisode(ctx)
		}
		d, err := time.Parse(dateLayout, in)
		if err != nil {
			c.term.Say("Dates look like 2024-01-08!")
			continue
		}
		ep, err := c.ar.EpisodeByDate(ctx, d)
		if errors.Is(err, archive.ErrNotFound) {
			c.term.Say("No episode found for %s.", in)
			continue
		}
		return ep, err
	}
}

func (c *console) leaderboard(ctx context.Context) error {
	scores, err := c.ar.Leaderboard(ctx, 10)
	if err != nil {
		return err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{i + 1, s.Username, s.Score, s.EpisodeTitle, s.EarnedAt.Local().Format(dateLayout)}
	}
	c.term.Table("Top 10 Global Scores", table.Row{"#", "Player", "Score", "Episode Title", "Earned Date"}, rows)
	return nil
}

func (c *console) profile(ctx context.Context, player archive.Player) error {
	scores, err := c.ar.ScoresByPlayer(ctx, player.ID, 10)
	if err != nil {
		return err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{i + 1, s.Score, s.EpisodeTitle, s.EarnedAt.Local().Format(dateLayout)}
	}
	c.term.Table(player.Username+"'s Top 10 Scores", table.Row{"#", "Score", "Episode Title", "Earned Date"}, rows)
	return nil
}

func (c *console) quit() error {
	for {
		in, err := c.term.Prompt("Are you sure you want to quit? Y/N ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(in)) {
		case "y":
			_, _ = c.term.Prompt("Thanks for playing! Press ENTER to quit.")
			return errQuit
		case "n":
			c.term.Say("Returning to menu...")
			return nil
		}
		c.term.Say("Invalid input!")
	}
}

// askInt prompts until the input is a number.
func (c *console) askInt(label string) (int, error) {
	for {
		in, err := c.term.Prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(in))
		if err == nil {
			return n, nil
		}
		c.term.Say("You must enter a number!")
	}
}

// yesNo prompts until the answer is y or n.
func (c *console) yesNo(label string) (bool, error) {
	for {
		in, err := c.term.Prompt(label)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(in)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		c.term.Say("Invalid input!")
	}
}
