package grammar

import (
	"maps"
	"slices"
	"strings"
)

// Operand is one side of a unification: a Segment or a SymbolSet.
type Operand interface {
	operand()
}

func (Segment) operand()   {}
func (SymbolSet) operand() {}

// SymbolSet is a set of raw symbols, typically a natural class restriction
// on a transducer arc.
type SymbolSet map[string]struct{}

// NewSymbolSet returns a set holding symbols.
func NewSymbolSet(symbols ...string) SymbolSet {
	set := make(SymbolSet, len(symbols))
	for _, s := range symbols {
		set[s] = struct{}{}
	}
	return set
}

// Contains reports whether symbol is in the set.
func (set SymbolSet) Contains(symbol string) bool {
	_, ok := set[symbol]
	return ok
}

// Symbols returns the set's members sorted.
func (set SymbolSet) Symbols() []string {
	return slices.Sorted(maps.Keys(set))
}

// Intersect returns the symbols present in both sets.
func (set SymbolSet) Intersect(other SymbolSet) SymbolSet {
	out := make(SymbolSet)
	for s := range set {
		if other.Contains(s) {
			out[s] = struct{}{}
		}
	}
	return out
}

// Equal reports whether both sets hold the same symbols.
func (set SymbolSet) Equal(other SymbolSet) bool {
	if len(set) != len(other) {
		return false
	}
	for s := range set {
		if !other.Contains(s) {
			return false
		}
	}
	return true
}

func (set SymbolSet) String() string {
	return "{" + strings.Join(set.Symbols(), ", ") + "}"
}

// Intersect unifies two operands (symbol unification, Riggle 2004).
// ok is false when the operands are incompatible.
//
//   - Joker against anything yields the other operand unchanged.
//   - A segment against a set yields the segment if its symbol is in the set.
//   - Two segments yield the segment if they are equal.
//   - Two sets yield their set intersection, which may be empty.
//
// The result does not depend on argument order.
func Intersect(x, y Operand) (result Operand, ok bool) {
	if x == nil || y == nil {
		return nil, false
	}
	if _, isSet := x.(SymbolSet); isSet {
		x, y = y, x
	}
	switch a := x.(type) {
	case Segment:
		return a.Unify(y)
	case SymbolSet:
		if b, isSet := y.(SymbolSet); isSet {
			return a.Intersect(b), true
		}
	}
	return nil, false
}

// Unify matches s against other. See Intersect.
func (s Segment) Unify(other Operand) (Operand, bool) {
	if s.Equal(Joker) {
		if other == nil {
			return nil, false
		}
		return other, true
	}
	switch o := other.(type) {
	case SymbolSet:
		if o.Contains(s.symbol) {
			return s, true
		}
	case Segment:
		if s.Equal(o) || o.Equal(Joker) {
			return s, true
		}
	}
	return nil, false
}
