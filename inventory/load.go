package inventory

import (
	"io"
	"os"
	"time"

	"github.com/teranos/otml/am"
	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
	"github.com/teranos/otml/logger"
)

// Decode decodes r in the given concrete format. schema is only used by
// the tabular formats and may be nil.
func Decode(r io.Reader, format Format, schema *grammar.FeatureList) (Source, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatTOML:
		return DecodeTOML(r)
	case FormatCSV:
		return DecodeTabular(r, schema)
	case FormatTSV:
		return DecodeTabular(r, schema, WithComma('\t'))
	}
	return Source{}, invalidInput(errors.Newf("cannot decode format %q", format), "")
}

// DecodeFile reads and decodes the inventory at path. format may be
// FormatAuto; schemaPath, when set, names a feature-only document used by
// the tabular formats.
func DecodeFile(path string, format Format, schemaPath string) (Source, error) {
	format, err := format.resolve(path)
	if err != nil {
		return Source{}, err
	}

	var schema *grammar.FeatureList
	if schemaPath != "" {
		if format != FormatCSV && format != FormatTSV {
			logger.Warnw("Schema ignored for self-describing inventory format",
				logger.FieldFile, path,
				logger.FieldFormat, format,
				logger.FieldSchema, schemaPath)
		} else if schema, err = LoadSchema(schemaPath); err != nil {
			return Source{}, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return Source{}, errors.Categorize(errors.Wrapf(err, "failed to open inventory %s", path), errors.ErrNotFound)
	}
	defer f.Close()

	src, err := Decode(f, format, schema)
	if err != nil {
		return Source{}, errors.Wrapf(err, "inventory %s", path)
	}
	return src, nil
}

// Load reads, decodes and validates the inventory at path.
func Load(path string, format Format, schemaPath string) (*grammar.FeatureTable, error) {
	start := time.Now()

	src, err := DecodeFile(path, format, schemaPath)
	if err != nil {
		return nil, err
	}
	table, err := src.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "inventory %s", path)
	}

	logger.Infow("Feature table loaded",
		logger.FieldFile, path,
		logger.FieldFeatures, table.FeatureCount(),
		logger.FieldSegments, len(table.Alphabet()),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return table, nil
}

// LoadConfig loads the inventory named by the feature_table section of cfg.
func LoadConfig(cfg *am.Config) (*grammar.FeatureTable, error) {
	if cfg.FeatureTable.Path == "" {
		return nil, errors.WithHint(
			errors.Categorize(errors.New("no feature table configured"), errors.ErrInvalidInput),
			"set feature_table.path in am.toml or OTML_FEATURE_TABLE_PATH")
	}
	format, err := ParseFormat(cfg.FeatureTable.Format)
	if err != nil {
		return nil, err
	}
	return Load(cfg.FeatureTable.Path, format, cfg.FeatureTable.Schema)
}

// LoadSchema reads a feature-only JSON, YAML or TOML document and returns
// its validated feature list.
func LoadSchema(path string) (*grammar.FeatureList, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatCSV || format == FormatTSV {
		return nil, invalidInput(errors.Newf("schema %s must be JSON, YAML or TOML", path), "")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Categorize(errors.Wrapf(err, "failed to open schema %s", path), errors.ErrNotFound)
	}
	defer f.Close()

	src, err := Decode(f, format, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "schema %s", path)
	}
	fl, err := grammar.NewFeatureList(src.Features)
	if err != nil {
		return nil, errors.Wrapf(err, "schema %s", path)
	}
	return fl, nil
}
