package grammar

import (
	"fmt"
	"slices"
	"strings"

	"github.com/teranos/otml/internal/randutil"
)

// Feature is a categorical dimension with a closed, ordered set of legal values.
type Feature struct {
	Label  string   `json:"label" yaml:"label" toml:"label"`
	Values []string `json:"values" yaml:"values" toml:"values"`
}

// Has reports whether value is one of the feature's legal values.
func (f Feature) Has(value string) bool {
	return slices.Contains(f.Values, value)
}

// RandomValue returns a uniformly chosen legal value, or "" if the feature
// has none.
func (f Feature) RandomValue() string {
	v, _ := randutil.Choice(f.Values)
	return v
}

// Equal reports whether f and other have the same label and the same values
// in the same order.
func (f Feature) Equal(other Feature) bool {
	return f.Label == other.Label && slices.Equal(f.Values, other.Values)
}

func (f Feature) String() string {
	return fmt.Sprintf("%s: [%s]", f.Label, strings.Join(f.Values, ", "))
}

func (f Feature) clone() Feature {
	return Feature{Label: f.Label, Values: slices.Clone(f.Values)}
}

// FeatureList is an ordered collection of features with unique labels.
// The order is significant: a segment's raw value row is positional and is
// zipped against it.
type FeatureList struct {
	features []Feature
	index    map[string]int
}

// NewFeatureList validates features and returns them as a list.
// It fails with ErrDuplicateFeatureLabel if a label repeats and with
// ErrEmptyFeatureValues if a feature declares no values.
func NewFeatureList(features []Feature) (*FeatureList, error) {
	fl := &FeatureList{
		features: make([]Feature, 0, len(features)),
		index:    make(map[string]int, len(features)),
	}
	for _, f := range features {
		if _, dup := fl.index[f.Label]; dup {
			return nil, newError(ErrDuplicateFeatureLabel, "feature %q was defined more than once", f.Label)
		}
		if len(f.Values) == 0 {
			return nil, newError(ErrEmptyFeatureValues, "feature %q", f.Label)
		}
		fl.index[f.Label] = len(fl.features)
		fl.features = append(fl.features, f.clone())
	}
	return fl, nil
}

// Len returns the number of features.
func (fl *FeatureList) Len() int {
	return len(fl.features)
}

// At returns the feature at position i in declaration order.
// It panics if i is out of range, like slice indexing.
func (fl *FeatureList) At(i int) Feature {
	return fl.features[i].clone()
}

// Feature returns the feature with the given label.
func (fl *FeatureList) Feature(label string) (Feature, bool) {
	i, ok := fl.index[label]
	if !ok {
		return Feature{}, false
	}
	return fl.features[i].clone(), true
}

// Values returns the legal values of the feature with the given label.
func (fl *FeatureList) Values(label string) ([]string, error) {
	i, ok := fl.index[label]
	if !ok {
		return nil, unknownFeature(label)
	}
	return slices.Clone(fl.features[i].Values), nil
}

// Position returns the declaration index of label.
func (fl *FeatureList) Position(label string) (int, bool) {
	i, ok := fl.index[label]
	return i, ok
}

// Labels returns the set of feature labels.
func (fl *FeatureList) Labels() map[string]struct{} {
	labels := make(map[string]struct{}, len(fl.features))
	for _, f := range fl.features {
		labels[f.Label] = struct{}{}
	}
	return labels
}

// Order returns the feature labels in declaration order.
func (fl *FeatureList) Order() []string {
	order := make([]string, len(fl.features))
	for i, f := range fl.features {
		order[i] = f.Label
	}
	return order
}

// Has reports whether a feature with the given label is declared.
func (fl *FeatureList) Has(label string) bool {
	_, ok := fl.index[label]
	return ok
}

// Contains reports whether f, label and values alike, is in the list.
func (fl *FeatureList) Contains(f Feature) bool {
	i, ok := fl.index[f.Label]
	return ok && fl.features[i].Equal(f)
}

// All returns a copy of the features in declaration order.
func (fl *FeatureList) All() []Feature {
	out := make([]Feature, len(fl.features))
	for i, f := range fl.features {
		out[i] = f.clone()
	}
	return out
}
