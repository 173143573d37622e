package inventory

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
)

// SymbolColumn is the header of the column holding segment symbols.
const SymbolColumn = "symbol"

// binaryValues are the legal values of every feature inferred from a
// header without a schema.
var binaryValues = []string{"+", "-"}

// TabularOption configures DecodeTabular.
type TabularOption func(*tabularConfig)

type tabularConfig struct {
	comma rune
}

// WithComma sets the field delimiter (default ',').
func WithComma(comma rune) TabularOption {
	return func(c *tabularConfig) {
		c.comma = comma
	}
}

// DecodeTabular decodes a segment table with a header row: one "symbol"
// column plus one column per feature.
//
// Boolean spellings are normalised to the binary encoding ("true" to "+",
// "false" to "-"). Without a schema every column is a binary feature in
// header order. With a schema the columns are matched to schema labels and
// values are reordered into schema order; a column the schema does not
// declare fails with grammar.ErrUnknownFeature and a missing one with
// grammar.ErrFeatureCountMismatch.
func DecodeTabular(r io.Reader, schema *grammar.FeatureList, opts ...TabularOption) (Source, error) {
	cfg := tabularConfig{comma: ','}
	for _, opt := range opts {
		opt(&cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return Source{}, invalidInput(errors.New("tabular inventory is empty"), "the first row must name the symbol column and the features")
	}
	if err != nil {
		return Source{}, decodeError(err, "tabular", "")
	}

	symbolCol := -1
	var labels []string
	var columns []int
	for i, h := range header {
		h = strings.TrimSpace(h)
		if strings.EqualFold(h, SymbolColumn) && symbolCol < 0 {
			symbolCol = i
			continue
		}
		labels = append(labels, h)
		columns = append(columns, i)
	}
	if symbolCol < 0 {
		return Source{}, invalidInput(errors.Newf("tabular inventory has no %q column", SymbolColumn), "")
	}

	features, positions, err := tabularFeatures(labels, schema)
	if err != nil {
		return Source{}, err
	}

	src := Source{Features: features}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Source{}, decodeError(err, "tabular", "")
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(header) {
			return Source{}, errors.Categorize(errors.Wrapf(grammar.ErrFeatureCountMismatch,
				"line %d has %d fields, header has %d", line, len(record), len(header)), errors.ErrInvalidInput)
		}

		values := make([]string, len(features))
		for i, col := range columns {
			values[positions[i]] = normalizeValue(record[col])
		}
		src.Rows = append(src.Rows, grammar.Row{Symbol: strings.TrimSpace(record[symbolCol]), Values: values})
	}
	return src, nil
}

// tabularFeatures returns the feature declarations for the header labels and,
// for each label, its position in those declarations.
func tabularFeatures(labels []string, schema *grammar.FeatureList) ([]grammar.Feature, []int, error) {
	positions := make([]int, len(labels))

	if schema == nil {
		features := make([]grammar.Feature, len(labels))
		for i, label := range labels {
			features[i] = grammar.Feature{Label: label, Values: binaryValues}
			positions[i] = i
		}
		return features, positions, nil
	}

	seen := make(map[string]bool, len(labels))
	for i, label := range labels {
		pos, ok := schema.Position(label)
		if !ok {
			return nil, nil, errors.Categorize(errors.Wrapf(grammar.ErrUnknownFeature,
				"column %q is not declared by the schema", label), errors.ErrNotFound)
		}
		if seen[label] {
			return nil, nil, errors.Categorize(errors.Wrapf(grammar.ErrDuplicateFeatureLabel,
				"column %q appears more than once", label), errors.ErrConflict)
		}
		seen[label] = true
		positions[i] = pos
	}
	if len(labels) != schema.Len() {
		return nil, nil, errors.Categorize(errors.Wrapf(grammar.ErrFeatureCountMismatch,
			"header has %d feature columns, schema declares %d", len(labels), schema.Len()), errors.ErrInvalidInput)
	}
	return schema.All(), positions, nil
}

func normalizeValue(raw string) string {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "true":
		return "+"
	case "false":
		return "-"
	}
	return v
}
