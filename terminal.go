// terminal.go
//
// Console input and output.
// Responsibilities:
//   - Line input with history and hidden password entry (peterh/liner).
//   - Game board, final clue and listings rendered as tables (go-pretty).
//   - Coloured verdicts (fatih/color).

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/peterh/liner"

	"github.com/jenopardy/jenopardy/internal/board"
	"github.com/jenopardy/jenopardy/internal/game"
)

var C = struct {
	Correct, Incorrect, Info, Header *color.Color
}{
	Correct:   color.New(color.FgGreen, color.Bold),
	Incorrect: color.New(color.FgRed),
	Info:      color.New(color.FgCyan),
	Header:    color.New(color.FgWhite, color.Bold),
}

// lineReader is satisfied by *liner.State.
type lineReader interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
}

// linerInput adds history and a fallback for password prompts when stdin
// is not a terminal.
type linerInput struct {
	*liner.State
}

func newLinerInput() linerInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return linerInput{State: line}
}

func (l linerInput) Prompt(prompt string) (string, error) {
	s, err := l.State.Prompt(prompt)
	if err == nil && strings.TrimSpace(s) != "" {
		l.AppendHistory(s)
	}
	return s, err
}

func (l linerInput) PasswordPrompt(prompt string) (string, error) {
	s, err := l.State.PasswordPrompt(prompt)
	if errors.Is(err, liner.ErrNotTerminalOutput) {
		return l.State.Prompt(prompt)
	}
	return s, err
}

// terminal implements game.Prompter and game.Presenter.
type terminal struct {
	in  lineReader
	out io.Writer
}

func (t *terminal) Prompt(label string) (string, error) { return t.in.Prompt(label) }

func (t *terminal) PasswordPrompt(label string) (string, error) { return t.in.PasswordPrompt(label) }

func (t *terminal) Say(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *terminal) Board(categories []board.Category, score int) {
	tw := t.table()
	header := make(table.Row, len(categories))
	for i, c := range categories {
		header[i] = c.Name
	}
	tw.AppendHeader(header)
	for i := 0; i < board.Size; i++ {
		row := make(table.Row, len(categories))
		for j, c := range categories {
			row[j] = c.Values[i].String()
		}
		tw.AppendRow(row)
	}
	configs := make([]table.ColumnConfig, len(categories))
	for i := range categories {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter, WidthMax: 18}
	}
	tw.SetColumnConfigs(configs)
	tw.Render()
	t.Say("Player score: %d", score)
}

func (t *terminal) Final(category, question string, score int) {
	tw := t.table()
	tw.AppendHeader(table.Row{category})
	tw.AppendRow(table.Row{question})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, WidthMax: 60}})
	tw.Render()
	t.Say("Player score: %d", score)
}

func (t *terminal) Verdict(res game.Result) {
	if res.Correct {
		C.Correct.Fprintln(t.out, "Correct!")
		return
	}
	C.Incorrect.Fprintf(t.out, "Incorrect! The answer was %s\n", res.Answer)
}

// Table renders a titled listing.
func (t *terminal) Table(title string, header table.Row, rows []table.Row) {
	fmt.Fprintln(t.out)
	C.Header.Fprintln(t.out, title)
	tw := t.table()
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	tw.Render()
}

func (t *terminal) table() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(t.out)
	tw.SetStyle(table.StyleRounded)
	return tw
}

var _ game.Prompter = (*terminal)(nil)
var _ game.Presenter = (*terminal)(nil)
