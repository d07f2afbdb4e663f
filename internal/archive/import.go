// internal/archive/import.go
//
// Import of scraped episode dumps into the archive.
//
// Two document shapes are accepted:
//   - the scraper's array form  [J, DJ, FJ], each {category: {question: answer}},
//     titled and dated by its file name "<title> - <Weekday>, <Month> <D>, <YYYY>.json";
//   - an object form {"title": ..., "date": "YYYY-MM-DD", "rounds": [J, DJ, FJ]}.
//
// Category order and clue order follow the document. Clue values come from
// the round templates by position; the final clue is stored under FinalSlot.
// Episodes whose title is already archived are skipped.

package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/jenopardy/jenopardy/internal/game"
)

// ErrMalformed rejects a dump that cannot be read as an episode.
var ErrMalformed = errors.New("malformed episode dump")

// Document is a parsed episode dump.
type Document struct {
	Title  string
	Date   time.Time
	Rounds [3][]CategoryData // Regular, Double, Final
}

// CategoryData is one category and its clues in document order.
type CategoryData struct {
	Name  string
	Clues []ClueData
}

// ClueData is a question and its answer.
type ClueData struct {
	Question string
	Answer   string
}

var roundKinds = [3]game.RoundKind{game.Regular, game.Double, game.Final}

// ParseDocument reads a dump. name is the file name, used for the title and
// air date of array-form dumps.
func ParseDocument(name string, data []byte) (Document, error) {
	var doc Document
	if !gjson.ValidBytes(data) {
		return doc, fmt.Errorf("%s: %w: invalid JSON", name, ErrMalformed)
	}

	root := gjson.ParseBytes(data)
	rounds := root
	if root.IsObject() {
		rounds = root.Get("rounds")
		doc.Title = strings.TrimSpace(root.Get("title").String())
		if d := root.Get("date").String(); d != "" {
			t, err := time.Parse(dateLayout, d)
			if err != nil {
				return doc, fmt.Errorf("%s: %w: date %q", name, ErrMalformed, d)
			}
			doc.Date = t
		}
	}
	if doc.Title == "" || doc.Date.IsZero() {
		title, date, err := ParseFileName(name)
		if err != nil {
			return doc, err
		}
		if doc.Title == "" {
			doc.Title = title
		}
		if doc.Date.IsZero() {
			doc.Date = date
		}
	}

	if !rounds.IsArray() {
		return doc, fmt.Errorf("%s: %w: rounds must be an array", name, ErrMalformed)
	}
	list := rounds.Array()
	if len(list) < len(doc.Rounds) {
		return doc, fmt.Errorf("%s: %w: want %d rounds, got %d", name, ErrMalformed, len(doc.Rounds), len(list))
	}
	for i := range doc.Rounds {
		if !list[i].IsObject() {
			return doc, fmt.Errorf("%s: %w: round %d is not an object", name, ErrMalformed, i)
		}
		list[i].ForEach(func(cat, clues gjson.Result) bool {
			c := CategoryData{Name: cat.String()}
			clues.ForEach(func(q, a gjson.Result) bool {
				c.Clues = append(c.Clues, ClueData{Question: q.String(), Answer: a.String()})
				return true
			})
			doc.Rounds[i] = append(doc.Rounds[i], c)
			return true
		})
	}
	if len(doc.Rounds[2]) == 0 || len(doc.Rounds[2][0].Clues) == 0 {
		return doc, fmt.Errorf("%s: %w: no final clue", name, ErrMalformed)
	}
	return doc, nil
}

// ParseFileName splits "<title> - <Weekday>, <Month> <D>, <YYYY>.json".
func ParseFileName(name string) (string, time.Time, error) {
	base := strings.TrimSuffix(path.Base(filepath.ToSlash(name)), ".json")
	i := strings.LastIndex(base, " - ")
	if i < 0 {
		return "", time.Time{}, fmt.Errorf("%s: %w: file name has no air date", name, ErrMalformed)
	}
	title := strings.TrimSpace(base[:i])
	date, err := time.Parse("Monday, January 2, 2006", strings.TrimSpace(base[i+3:]))
	if err != nil || title == "" {
		return "", time.Time{}, fmt.Errorf("%s: %w: file name has no air date", name, ErrMalformed)
	}
	return title, date, nil
}

// Import stores doc unless its title is already archived. It reports
// whether the episode was added.
func (s *Store) Import(ctx context.Context, doc Document, cfg game.Config) (int64, bool, error) {
	exists, err := s.HasTitle(ctx, doc.Title)
	if err != nil {
		return 0, false, err
	}
	if exists {
		log.Info().Str("title", doc.Title).Msg("already archived, skipping")
		return 0, false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO episodes (ep_date, ep_title) VALUES (?,?)`,
		doc.Date.Format(dateLayout), doc.Title)
	if err != nil {
		return 0, false, fmt.Errorf("insert episode: %w", err)
	}
	episodeID, err := res.LastInsertId()
	if err != nil {
		return 0, false, err
	}

	for i, cats := range doc.Rounds {
		kind := roundKinds[i]
		values, err := slotValues(cfg, kind)
		if err != nil {
			return 0, false, err
		}
		for pos, c := range cats {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO categories (episode_id, name, round, position) VALUES (?,?,?,?)`,
				episodeID, c.Name, string(kind), pos+1)
			if err != nil {
				return 0, false, fmt.Errorf("insert category %q: %w", c.Name, err)
			}
			categoryID, err := res.LastInsertId()
			if err != nil {
				return 0, false, err
			}
			for j, clue := range c.Clues {
				if j >= len(values) {
					break
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO clues (category_id, question, answer, money_value) VALUES (?,?,?,?)`,
					categoryID, clue.Question, clue.Answer, values[j]); err != nil {
					return 0, false, fmt.Errorf("insert clue: %w", err)
				}
			}
			if kind == game.Final {
				break
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	log.Info().Str("title", doc.Title).Int64("episode", episodeID).Msg("imported")
	return episodeID, true, nil
}

func slotValues(cfg game.Config, kind game.RoundKind) ([]int, error) {
	if kind == game.Final {
		return []int{cfg.FinalSlot}, nil
	}
	tmpl, err := cfg.Denominations(kind)
	if err != nil {
		return nil, err
	}
	return tmpl[:], nil
}

// ImportFile parses and imports one dump from disk.
func (s *Store) ImportFile(ctx context.Context, file string, cfg game.Config) (bool, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}
	doc, err := ParseDocument(filepath.Base(file), data)
	if err != nil {
		return false, err
	}
	_, added, err := s.Import(ctx, doc, cfg)
	return added, err
}

// ImportFS imports every *.json file at the root of fsys in name order and
// returns how many episodes were added.
func (s *Store) ImportFS(ctx context.Context, fsys fs.FS, cfg game.Config) (int, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	added := 0
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return added, err
		}
		doc, err := ParseDocument(f, data)
		if err != nil {
			return added, err
		}
		_, ok, err := s.Import(ctx, doc, cfg)
		if err != nil {
			return added, fmt.Errorf("%s: %w", f, err)
		}
		if ok {
			added++
		}
	}
	return added, nil
}
