// internal/board/board.go
//
// Per-round game board: each category paired with its five clue values.
// Responsibilities:
//   - Build a board from the round's category names and denomination template.
//   - Mark answered values as spent without moving any slot.
//   - Answer validity/exhaustion queries for single categories and the round.
//
// Notes:
//   - ValueSet is a fixed-size array, so every category owns an independent copy
//     of the template; mutating one category can never leak into another.
//   - Category lookup is case-insensitive; the stored name keeps its original casing.

package board

import (
	"errors"
	"strings"
)

// Size is the number of clue slots per category.
const Size = 5

var (
	// ErrNotFound is returned for an unknown category or a value not on the board.
	ErrNotFound = errors.New("not found")
	// ErrSpent is returned when removing a value that was already answered.
	ErrSpent = errors.New("value already answered")
)

// Denominations is a round's ordered value template, e.g. 200..1000.
type Denominations [Size]int

// Category is a canonical name and its value set.
type Category struct {
	Name   string
	Values ValueSet
}

// Board holds the categories of one round in data-source order.
type Board struct {
	categories []Category
	index      map[string]int // lowercased name → position in categories
}

// New builds a board with a fresh copy of tmpl attached to every category.
// Duplicate names (case-insensitive) keep their first occurrence.
func New(names []string, tmpl Denominations) *Board {
	b := &Board{
		categories: make([]Category, 0, len(names)),
		index:      make(map[string]int, len(names)),
	}
	for _, name := range names {
		key := strings.ToLower(name)
		if _, dup := b.index[key]; dup {
			continue
		}
		b.index[key] = len(b.categories)
		b.categories = append(b.categories, Category{Name: name, Values: NewValueSet(tmpl)})
	}
	return b
}

// Categories returns a snapshot of the board in display order.
func (b *Board) Categories() []Category {
	out := make([]Category, len(b.categories))
	copy(out, b.categories)
	return out
}

// Canonical resolves a name to its original casing.
func (b *Board) Canonical(name string) (string, bool) {
	i, ok := b.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return b.categories[i].Name, true
}

// ValueSet returns a copy of the category's values.
func (b *Board) ValueSet(name string) (ValueSet, error) {
	c, err := b.find(name)
	if err != nil {
		return ValueSet{}, err
	}
	return c.Values, nil
}

// RemoveValue marks the first slot holding value as spent.
// The slot keeps its position, so the set stays Size long.
func (b *Board) RemoveValue(name string, value int) error {
	c, err := b.find(name)
	if err != nil {
		return err
	}
	i := c.Values.Index(value)
	if i < 0 {
		if c.Values.wasSpent(value) {
			return ErrSpent
		}
		return ErrNotFound
	}
	c.Values[i] = c.Values[i].spend()
	return nil
}

// CategoryIsValid reports whether the category still has a value to play.
// Unknown categories are never valid.
func (b *Board) CategoryIsValid(name string) bool {
	c, err := b.find(name)
	if err != nil {
		return false
	}
	return !c.Values.Exhausted()
}

// AnyCategoryValid is the round's continuation predicate.
func (b *Board) AnyCategoryValid() bool {
	for _, c := range b.categories {
		if !c.Values.Exhausted() {
			return true
		}
	}
	return false
}

// ShouldRemoveCategory reports whether every slot of the category is spent.
func (b *Board) ShouldRemoveCategory(name string) (bool, error) {
	c, err := b.find(name)
	if err != nil {
		return false, err
	}
	return c.Values.Exhausted(), nil
}

func (b *Board) find(name string) (*Category, error) {
	i, ok := b.index[strings.ToLower(name)]
	if !ok {
		return nil, ErrNotFound
	}
	return &b.categories[i], nil
}
