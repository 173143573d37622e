package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/otml/am"
	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
	"github.com/teranos/otml/inventory"
)

var loadedConfig *am.Config

// LoadConfig returns the configuration for this invocation: the file named
// by the root --config flag, or the usual am cascade
func LoadConfig(cmd *cobra.Command) (*am.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}

	var (
		cfg *am.Config
		err error
	)
	if path, _ := cmd.Root().PersistentFlags().GetString("config"); path != "" {
		cfg, err = am.LoadFromFile(path)
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return nil, err
	}
	loadedConfig = cfg
	return cfg, nil
}

// verbosity is the -v count, or log.verbosity when that is higher
func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	if loadedConfig != nil {
		v = max(v, loadedConfig.Log.Verbosity)
	}
	return v
}

// loadTable loads the inventory at path, or the configured one when path is
// empty. An explicit --schema flag wins over feature_table.schema.
func loadTable(cmd *cobra.Command, path string) (*grammar.FeatureTable, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	schema := cfg.FeatureTable.Schema
	if f := cmd.Flags().Lookup("schema"); f != nil && f.Changed {
		schema = f.Value.String()
	}

	if path == "" {
		local := *cfg
		local.FeatureTable.Schema = schema
		return inventory.LoadConfig(&local)
	}
	return inventory.Load(path, inventory.FormatAuto, schema)
}

// parseOperand reads a unification operand: "*" (Joker), "-" (Null),
// a set literal such as "{p,b}" or a symbol of table
func parseOperand(table *grammar.FeatureTable, text string) (grammar.Operand, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == grammar.JokerSymbol:
		return grammar.Joker, nil
	case text == grammar.NullSymbol:
		return grammar.Null, nil
	case strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}"):
		inner := strings.TrimSpace(text[1 : len(text)-1])
		if inner == "" {
			return grammar.NewSymbolSet(), nil
		}
		parts := strings.Split(inner, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return grammar.NewSymbolSet(parts...), nil
	}
	return table.Segment(text)
}

// parseBundle reads label=value pairs, rejecting labels the table does not declare
func parseBundle(table *grammar.FeatureTable, pairs []string) (grammar.Bundle, error) {
	bundle := make(grammar.Bundle, len(pairs))
	for _, pair := range pairs {
		label, value, ok := strings.Cut(pair, "=")
		label, value = strings.TrimSpace(label), strings.TrimSpace(value)
		if !ok || label == "" {
			return nil, errors.WithHint(
				errors.Categorize(errors.Newf("malformed feature %q", pair), errors.ErrInvalidInput),
				"write features as label=value, e.g. voice=+")
		}
		if !table.IsValidFeature(label) {
			return nil, errors.Categorize(errors.Wrapf(grammar.ErrUnknownFeature, "%q", label), errors.ErrNotFound)
		}
		bundle[label] = value
	}
	return bundle, nil
}

func operandString(op grammar.Operand) string {
	switch o := op.(type) {
	case grammar.Segment:
		return o.String()
	case grammar.SymbolSet:
		return o.String()
	}
	return "<nil>"
}
