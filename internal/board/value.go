// internal/board/value.go
//
// Slot and ValueSet: the tagged Value(int) | Spent representation of a column.

package board

import "strconv"

// Slot is one clue position: either an available value or spent.
// A spent slot remembers which denomination it held so double
// answers can be told apart from values that never existed.
type Slot struct {
	value int
	spent bool
}

// Value returns an available slot holding v.
func Value(v int) Slot { return Slot{value: v} }

// Spent is the sentinel displayed for an answered clue.
var Spent = Slot{spent: true}

// IsSpent reports whether the slot has been answered.
func (s Slot) IsSpent() bool { return s.spent }

// Value returns the slot's value and true, or 0 and false once spent.
func (s Slot) Value() (int, bool) {
	if s.spent {
		return 0, false
	}
	return s.value, true
}

// String renders the slot the way the board shows it ("x" when spent).
func (s Slot) String() string {
	if s.spent {
		return "x"
	}
	return strconv.Itoa(s.value)
}

func (s Slot) spend() Slot { return Slot{value: s.value, spent: true} }

// ValueSet is a category's ordered slots. Positions never move.
type ValueSet [Size]Slot

// NewValueSet builds an all-available set from a template.
func NewValueSet(tmpl Denominations) ValueSet {
	var vs ValueSet
	for i, v := range tmpl {
		vs[i] = Value(v)
	}
	return vs
}

// Index returns the position of the first available slot holding v, or -1.
func (vs ValueSet) Index(v int) int {
	for i, s := range vs {
		if !s.spent && s.value == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is still available.
func (vs ValueSet) Contains(v int) bool { return vs.Index(v) >= 0 }

// Remaining lists the available values in slot order.
func (vs ValueSet) Remaining() []int {
	out := make([]int, 0, Size)
	for _, s := range vs {
		if v, ok := s.Value(); ok {
			out = append(out, v)
		}
	}
	return out
}

// SpentCount is the number of answered slots.
func (vs ValueSet) SpentCount() int {
	n := 0
	for _, s := range vs {
		if s.spent {
			n++
		}
	}
	return n
}

// Exhausted reports whether the set collapses to the single sentinel value.
func (vs ValueSet) Exhausted() bool { return vs.SpentCount() == Size }

func (vs ValueSet) wasSpent(v int) bool {
	for _, s := range vs {
		if s.spent && s.value == v {
			return true
		}
	}
	return false
}
