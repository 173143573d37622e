package grammar

import (
	"fmt"
	"maps"
	"strings"
)

// Symbols of the two segments that exist without a feature table
const (
	JokerSymbol = "*"
	NullSymbol  = "-"
)

var (
	// Joker is the universal wildcard: it unifies with anything and yields
	// the other side unchanged.
	Joker = Segment{symbol: JokerSymbol}

	// Null is the epsilon segment used for empty alignment slots.
	Null = Segment{symbol: NullSymbol}
)

// Segment is a symbol of the inventory, optionally carrying the feature
// assignment of the table that defined it. Identity is the symbol alone; use
// Equal rather than == to compare segments.
type Segment struct {
	symbol  string
	content *segmentContent
}

// segmentContent is never mutated after the owning table is built.
type segmentContent struct {
	features Assignment
	table    *FeatureTable
}

// Symbol returns the segment's symbol.
func (s Segment) Symbol() string {
	return s.symbol
}

// Key returns the value segments hash by.
func (s Segment) Key() string {
	return s.symbol
}

// HasFeatures reports whether the segment carries a feature assignment.
// It is false for Joker and Null.
func (s Segment) HasFeatures() bool {
	return s.content != nil
}

// Table returns the owning feature table, or nil for Joker and Null.
func (s Segment) Table() *FeatureTable {
	if s.content == nil {
		return nil
	}
	return s.content.table
}

// Features returns a copy of the feature assignment, nil when absent.
func (s Segment) Features() Assignment {
	if s.content == nil {
		return nil
	}
	return maps.Clone(s.content.features)
}

// Value returns the value the segment holds for feature label.
func (s Segment) Value(label string) (string, error) {
	if s.content == nil {
		return "", unknownFeature(label)
	}
	v, ok := s.content.features[label]
	if !ok {
		return "", unknownFeature(label)
	}
	return v, nil
}

// FeatureLength returns the number of features carried, 0 for Joker and Null.
func (s Segment) FeatureLength() int {
	if s.content == nil {
		return 0
	}
	return len(s.content.features)
}

// HasFeatureBundle reports whether every label/value pair of bundle is held
// by the segment, that is whether the segment belongs to the natural class
// bundle describes. The empty bundle is satisfied by every segment;
// segments without features satisfy no other bundle.
func (s Segment) HasFeatureBundle(bundle FeatureBundle) bool {
	var dict map[string]string
	if bundle != nil {
		dict = bundle.FeatureDict()
	}
	if len(dict) == 0 {
		return true
	}
	if s.content == nil {
		return false
	}
	for label, value := range dict {
		if v, ok := s.content.features[label]; !ok || v != value {
			return false
		}
	}
	return true
}

// Equal reports whether s and other are the same segment, i.e. share a symbol.
func (s Segment) Equal(other Segment) bool {
	return s.symbol == other.symbol
}

// ContentEqual reports whether s and other share a symbol and carry equal
// feature assignments.
func (s Segment) ContentEqual(other Segment) bool {
	if s.symbol != other.symbol || s.HasFeatures() != other.HasFeatures() {
		return false
	}
	if s.content == nil {
		return true
	}
	return maps.Equal(s.content.features, other.content.features)
}

// String renders "Segment b[+, +]" for table segments and the bare symbol
// for Joker and Null.
func (s Segment) String() string {
	if s.content == nil {
		return s.symbol
	}
	vector := s.content.table.vector(s.content.features)
	return fmt.Sprintf("Segment %s[%s]", s.symbol, strings.Join(vector, ", "))
}

// FeatureBundle is a partial feature specification describing a natural
// class. Bundles are built and combined by the grammar engine; this package
// only tests membership.
type FeatureBundle interface {
	FeatureDict() map[string]string
}

// Bundle is a map-backed FeatureBundle.
type Bundle map[string]string

// FeatureDict implements FeatureBundle.
func (b Bundle) FeatureDict() map[string]string {
	return b
}

// SegmentSet is a set of segments keyed by identity.
type SegmentSet map[string]Segment

// NewSegmentSet returns a set holding segments.
func NewSegmentSet(segments ...Segment) SegmentSet {
	set := make(SegmentSet, len(segments))
	for _, s := range segments {
		set.Add(s)
	}
	return set
}

// Add inserts s, replacing any segment with the same symbol.
func (set SegmentSet) Add(s Segment) {
	set[s.Key()] = s
}

// Contains reports whether a segment with s's symbol is in the set.
func (set SegmentSet) Contains(s Segment) bool {
	_, ok := set[s.Key()]
	return ok
}

// Symbols returns the set's symbols as a SymbolSet.
func (set SegmentSet) Symbols() SymbolSet {
	out := make(SymbolSet, len(set))
	for symbol := range set {
		out[symbol] = struct{}{}
	}
	return out
}
