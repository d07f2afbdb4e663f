// admin.go
//
// Admin menu, reachable from the main menu by the configured admin id.
// Lists players and scores, removes players (with their scores) or single
// scores after confirmation, and plays debug games where each round's
// score is typed in instead of played.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jenopardy/jenopardy/internal/archive"
)

const adminMenu = `
1. View all players
2. View all scores
3. Remove a player
4. Remove a score
5. Play a debug game
6. Return to main menu`

func (c *console) admin(ctx context.Context, admin archive.Player) error {
	for {
		c.term.Say("%s", adminMenu)
		choice, err := c.askInt("What would you like to do? ")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = c.listPlayers(ctx)
		case 2:
			err = c.listScores(ctx)
		case 3:
			err = c.removePlayer(ctx, admin)
		case 4:
			err = c.removeScore(ctx)
		case 5:
			err = c.play(ctx, admin.ID, true)
		case 6:
			return nil
		default:
			c.term.Say("Please enter a number between 1 and 6!")
		}
		if err != nil {
			return err
		}
	}
}

func (c *console) listPlayers(ctx context.Context) error {
	players, err := c.ar.Players(ctx)
	if err != nil {
		return err
	}
	rows := make([]table.Row, len(players))
	for i, p := range players {
		rows[i] = table.Row{p.ID, p.Username, p.CreatedAt.Local().Format(dateLayout)}
	}
	c.term.Table("Players", table.Row{"User ID", "Username", "Created"}, rows)
	return nil
}

func (c *console) listScores(ctx context.Context) error {
	scores, err := c.ar.Scores(ctx)
	if err != nil {
		return err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{s.ID, s.Username, s.Score, s.EpisodeTitle, s.EarnedAt.Local().Format(dateLayout)}
	}
	c.term.Table("Scores", table.Row{"Score ID", "Player", "Score", "Episode Title", "Earned Date"}, rows)
	return nil
}

// removePlayer deletes a player and their scores. The admin cannot remove
// their own account.
func (c *console) removePlayer(ctx context.Context, admin archive.Player) error {
	for {
		name, err := c.term.Prompt("What player would you like to remove? ")
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		p, err := c.ar.PlayerByUsername(ctx, name)
		if errors.Is(err, archive.ErrNotFound) {
			c.term.Say("No player found with username %s", name)
			again, err := c.yesNo("Try again? Y/N ")
			if err != nil || !again {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if p.ID == admin.ID {
			c.term.Say("You can't remove your own account!")
			return nil
		}

		sure, err := c.yesNo(fmt.Sprintf("Are you sure you want to remove player %s and their scores? Y/N ", p.Username))
		if err != nil || !sure {
			return err
		}
		if err := c.ar.DeletePlayer(ctx, p.ID); err != nil {
			return err
		}
		c.term.Say("Player #%d %s removed from database.", p.ID, p.Username)
		return nil
	}
}

func (c *console) removeScore(ctx context.Context) error {
	for {
		id, err := c.askInt("What is the scoreID you want to remove? ")
		if err != nil {
			return err
		}
		if _, err := c.ar.ScoreByID(ctx, int64(id)); errors.Is(err, archive.ErrNotFound) {
			c.term.Say("No score found with scoreID %d", id)
			again, err := c.yesNo("Try again? Y/N ")
			if err != nil || !again {
				return err
			}
			continue
		} else if err != nil {
			return err
		}

		sure, err := c.yesNo(fmt.Sprintf("Are you sure you want to remove scoreID %d? Y/N ", id))
		if err != nil || !sure {
			return err
		}
		if err := c.ar.DeleteScore(ctx, int64(id)); err != nil {
			return err
		}
		c.term.Say("Score removed.")
		return nil
	}
}
