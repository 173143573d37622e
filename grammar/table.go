package grammar

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/teranos/otml/internal/randutil"
	"github.com/teranos/otml/logger"
)

// Row is one symbol's feature values, positional in feature declaration order.
type Row struct {
	Symbol string
	Values []string
}

// Assignment maps feature labels to values.
type Assignment map[string]string

// FeatureTable is the validated mapping from every known symbol to its full
// feature assignment. It is read-only after construction and may be shared
// between goroutines without locking.
type FeatureTable struct {
	features    *FeatureList
	order       []string
	assignments map[string]Assignment
	alphabet    []string
	segments    []Segment
	position    map[string]int
}

// NewFeatureTable validates features and rows and builds the table.
//
// Construction fails with ErrDuplicateFeatureLabel or ErrEmptyFeatureValues
// for a bad schema, ErrFeatureCountMismatch when a row has the wrong number of
// values, ErrIllegalFeatureValue when a value is not legal for the feature at
// its position, ErrDuplicateSymbol when two rows share a symbol and
// ErrReservedSymbol when a row uses the Joker or Null symbol.
func NewFeatureTable(features []Feature, rows []Row) (*FeatureTable, error) {
	fl, err := NewFeatureList(features)
	if err != nil {
		return nil, err
	}
	return NewFeatureTableFromList(fl, rows)
}

// NewFeatureTableFromList builds a table over an already validated feature list.
func NewFeatureTableFromList(fl *FeatureList, rows []Row) (*FeatureTable, error) {
	t := &FeatureTable{
		features:    fl,
		order:       fl.Order(),
		assignments: make(map[string]Assignment, len(rows)),
		alphabet:    make([]string, 0, len(rows)),
	}

	for _, row := range rows {
		if row.Symbol == JokerSymbol || row.Symbol == NullSymbol {
			return nil, newError(ErrReservedSymbol, "symbol %q is reserved", row.Symbol)
		}
		if _, dup := t.assignments[row.Symbol]; dup {
			return nil, newError(ErrDuplicateSymbol, "symbol %q was defined more than once", row.Symbol)
		}
		if len(row.Values) != fl.Len() {
			return nil, newError(ErrFeatureCountMismatch,
				"segment %q has %d values, expected %d", row.Symbol, len(row.Values), fl.Len())
		}

		assignment := make(Assignment, fl.Len())
		for i, value := range row.Values {
			feature := fl.features[i]
			if !feature.Has(value) {
				return nil, newError(ErrIllegalFeatureValue,
					"segment %q: value %q is not one of %s", row.Symbol, value, feature)
			}
			assignment[feature.Label] = value
		}
		t.assignments[row.Symbol] = assignment
		t.alphabet = append(t.alphabet, row.Symbol)
	}

	t.segments = make([]Segment, len(t.alphabet))
	t.position = make(map[string]int, len(t.alphabet))
	for i, symbol := range t.alphabet {
		t.position[symbol] = i
		t.segments[i] = Segment{
			symbol:  symbol,
			content: &segmentContent{features: t.assignments[symbol], table: t},
		}
	}

	logger.Debugw("Feature table built",
		logger.FieldFeatures, fl.Len(),
		logger.FieldSegments, len(t.alphabet))

	return t, nil
}

// FeatureCount returns the number of declared features.
func (t *FeatureTable) FeatureCount() int {
	return t.features.Len()
}

// FeatureLabels returns the set of declared feature labels.
func (t *FeatureTable) FeatureLabels() map[string]struct{} {
	return t.features.Labels()
}

// FeatureOrder returns the feature labels in declaration order.
func (t *FeatureTable) FeatureOrder() []string {
	return slices.Clone(t.order)
}

// Features returns the table's schema. The list is immutable.
func (t *FeatureTable) Features() *FeatureList {
	return t.features
}

// RandomValue returns a uniformly chosen legal value of the feature label.
func (t *FeatureTable) RandomValue(label string) (string, error) {
	f, ok := t.features.Feature(label)
	if !ok {
		return "", unknownFeature(label)
	}
	return f.RandomValue(), nil
}

// Alphabet returns the known symbols in source order.
func (t *FeatureTable) Alphabet() []string {
	return slices.Clone(t.alphabet)
}

// SymbolSet returns the alphabet as a set, ready for Intersect.
func (t *FeatureTable) SymbolSet() SymbolSet {
	return NewSymbolSet(t.alphabet...)
}

// Segments returns a fresh copy of the table's segments in source order.
func (t *FeatureTable) Segments() []Segment {
	return slices.Clone(t.segments)
}

// Segment returns the segment for symbol.
func (t *FeatureTable) Segment(symbol string) (Segment, error) {
	i, ok := t.position[symbol]
	if !ok {
		return Segment{}, unknownSymbol(symbol)
	}
	return t.segments[i], nil
}

// RandomSymbol returns a uniformly chosen symbol of the alphabet, or "" when
// the table is empty.
func (t *FeatureTable) RandomSymbol() string {
	s, _ := randutil.Choice(t.alphabet)
	return s
}

// OrderedFeatureVector returns the feature values of symbol in feature
// declaration order.
func (t *FeatureTable) OrderedFeatureVector(symbol string) ([]string, error) {
	a, ok := t.assignments[symbol]
	if !ok {
		return nil, unknownSymbol(symbol)
	}
	return t.vector(a), nil
}

func (t *FeatureTable) vector(a Assignment) []string {
	v := make([]string, len(t.order))
	for i, label := range t.order {
		v[i] = a[label]
	}
	return v
}

// IsValidFeature reports whether label is a declared feature.
func (t *FeatureTable) IsValidFeature(label string) bool {
	return t.features.Has(label)
}

// IsValidSymbol reports whether symbol is in the alphabet.
func (t *FeatureTable) IsValidSymbol(symbol string) bool {
	_, ok := t.assignments[symbol]
	return ok
}

// Assignment returns a copy of symbol's full feature assignment.
func (t *FeatureTable) Assignment(symbol string) (Assignment, error) {
	a, ok := t.assignments[symbol]
	if !ok {
		return nil, unknownSymbol(symbol)
	}
	return maps.Clone(a), nil
}

// Value returns the value of feature label for symbol.
func (t *FeatureTable) Value(symbol, label string) (string, error) {
	a, ok := t.assignments[symbol]
	if !ok {
		return "", unknownSymbol(symbol)
	}
	v, ok := a[label]
	if !ok {
		return "", unknownFeature(label)
	}
	return v, nil
}

// Rows returns the table contents as source rows, in source order.
func (t *FeatureTable) Rows() []Row {
	rows := make([]Row, len(t.alphabet))
	for i, symbol := range t.alphabet {
		rows[i] = Row{Symbol: symbol, Values: t.vector(t.assignments[symbol])}
	}
	return rows
}

// NaturalClass returns the segments whose assignment satisfies bundle,
// in source order.
func (t *FeatureTable) NaturalClass(bundle FeatureBundle) []Segment {
	var out []Segment
	for _, s := range t.segments {
		if s.HasFeatureBundle(bundle) {
			out = append(out, s)
		}
	}
	return out
}

// String renders the table as a symbol by feature grid, symbols sorted.
func (t *FeatureTable) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Feature Table with %d features and %d segments:\n", t.FeatureCount(), len(t.alphabet))

	fmt.Fprintf(&b, "%-20s", "Segment/Feature")
	for _, label := range t.order {
		fmt.Fprintf(&b, "%-10s", label)
	}
	b.WriteString("\n")

	symbols := slices.Sorted(maps.Keys(t.assignments))
	for _, symbol := range symbols {
		fmt.Fprintf(&b, "%-20s", symbol)
		for _, label := range t.order {
			fmt.Fprintf(&b, "%-10s", t.assignments[symbol][label])
		}
		b.WriteString("\n")
	}
	return b.String()
}
