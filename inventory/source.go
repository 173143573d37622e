// Package inventory reads segment inventories into grammar.FeatureTable.
//
// Four source shapes are understood, all parsing to the same in-memory model:
//
//	JSON   {"feature": [{"label": "voice", "values": ["+", "-"]}],
//	        "feature_table": {"b": ["+"], "p": ["-"]}}
//	YAML   the same document in YAML
//	TOML   [[feature]] tables plus a [feature_table] table
//	CSV    a header row with a "symbol" column and one column per feature
//
// Symbol order is the order of the source document in every format.
package inventory

import (
	"path/filepath"
	"strings"

	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
)

// Source is a decoded, not yet validated inventory.
type Source struct {
	Features []grammar.Feature
	Rows     []grammar.Row
}

// Build validates the source and returns the feature table.
func (s Source) Build() (*grammar.FeatureTable, error) {
	return grammar.NewFeatureTable(s.Features, s.Rows)
}

// Format names a source encoding.
type Format string

// Supported formats
const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

// Formats lists every concrete format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatCSV, FormatTSV}

// ParseFormat parses a format name; "" means FormatAuto.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatYAML, FormatTOML, FormatCSV, FormatTSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", invalidInput(errors.Newf("unsupported format %q", name),
		"supported formats: auto, json, yaml, toml, csv, tsv")
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	}
	return "", invalidInput(errors.Newf("cannot detect inventory format of %q", path),
		"pass an explicit format (json, yaml, toml, csv, tsv)")
}

// resolve turns FormatAuto into a concrete format for path.
func (f Format) resolve(path string) (Format, error) {
	if f == "" || f == FormatAuto {
		return DetectFormat(path)
	}
	return f, nil
}

func invalidInput(err error, hint string) error {
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return errors.Categorize(err, errors.ErrInvalidInput)
}
