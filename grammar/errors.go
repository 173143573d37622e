package grammar

import "github.com/teranos/otml/errors"

// Construction errors
var (
	// ErrDuplicateFeatureLabel indicates a feature label declared more than once
	ErrDuplicateFeatureLabel = errors.New("duplicate feature label")

	// ErrEmptyFeatureValues indicates a feature declared without legal values
	ErrEmptyFeatureValues = errors.New("feature has no legal values")

	// ErrFeatureCountMismatch indicates a row whose value count differs from the feature count
	ErrFeatureCountMismatch = errors.New("feature count mismatch")

	// ErrIllegalFeatureValue indicates a value outside the feature's legal values
	ErrIllegalFeatureValue = errors.New("illegal feature value")

	// ErrDuplicateSymbol indicates a symbol defined by more than one row
	ErrDuplicateSymbol = errors.New("duplicate symbol")

	// ErrReservedSymbol indicates a row using the Joker or Null symbol
	ErrReservedSymbol = errors.New("reserved symbol")
)

// Query errors
var (
	// ErrUnknownSymbol indicates a symbol not present in the table
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrUnknownFeature indicates a feature label not declared by the table
	ErrUnknownFeature = errors.New("unknown feature")
)

var categories = map[error]error{
	ErrDuplicateFeatureLabel: errors.ErrConflict,
	ErrDuplicateSymbol:       errors.ErrConflict,
	ErrEmptyFeatureValues:    errors.ErrInvalidInput,
	ErrFeatureCountMismatch:  errors.ErrInvalidInput,
	ErrIllegalFeatureValue:   errors.ErrInvalidInput,
	ErrReservedSymbol:        errors.ErrInvalidInput,
	ErrUnknownSymbol:         errors.ErrNotFound,
	ErrUnknownFeature:        errors.ErrNotFound,
}

// newError wraps sentinel with a formatted message and marks it with the
// sentinel's category.
func newError(sentinel error, format string, args ...interface{}) error {
	return errors.Categorize(errors.Wrapf(sentinel, format, args...), categories[sentinel])
}

func unknownSymbol(symbol string) error {
	return newError(ErrUnknownSymbol, "symbol %q", symbol)
}

func unknownFeature(label string) error {
	return newError(ErrUnknownFeature, "feature %q", label)
}
