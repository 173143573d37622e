package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/otml/am"
	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
	"github.com/teranos/otml/inventory"
)

var (
	consonants    = filepath.Join("testdata", "consonants.json")
	consonantsCSV = filepath.Join("testdata", "consonants.csv")
	featureSchema = filepath.Join("testdata", "features.yaml")
)

func loadConsonants(t *testing.T) *grammar.FeatureTable {
	t.Helper()
	table, err := inventory.Load(consonants, inventory.FormatAuto, "")
	require.NoError(t, err)
	return table
}

var testRoot = newTestRoot()

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "otml", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().Bool("json", false, "")
	root.AddCommand(TableCmd, SegmentCmd, VersionCmd)
	return root
}

// resetFlags restores every flag of cmd and its children to its default
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			// Set appends to slice flags
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs args against the test root with an empty configuration
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, &am.Config{}, args...)
}

// executeWithConfig runs args against the test root with cfg as the loaded configuration
func executeWithConfig(t *testing.T, cfg *am.Config, args ...string) (string, error) {
	t.Helper()
	loadedConfig = cfg
	t.Cleanup(func() {
		loadedConfig = nil
		resetFlags(testRoot)
	})

	var out bytes.Buffer
	testRoot.SetOut(&out)
	testRoot.SetErr(&out)
	testRoot.SetArgs(args)
	err := testRoot.Execute()
	return out.String(), err
}

func TestParseOperand(t *testing.T) {
	table := loadConsonants(t)

	tests := []struct {
		text string
		want grammar.Operand
	}{
		{"*", grammar.Joker},
		{"-", grammar.Null},
		{"{}", grammar.NewSymbolSet()},
		{"{t}", grammar.NewSymbolSet("t")},
		{"{ t, d ,b }", grammar.NewSymbolSet("t", "d", "b")},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseOperand(table, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := parseOperand(table, " d ")
	require.NoError(t, err)
	seg, ok := got.(grammar.Segment)
	require.True(t, ok)
	assert.Equal(t, "d", seg.Symbol())
	assert.True(t, seg.HasFeatures())

	_, err = parseOperand(table, "q")
	assert.True(t, errors.Is(err, grammar.ErrUnknownSymbol))
}

func TestParseBundle(t *testing.T) {
	table := loadConsonants(t)

	bundle, err := parseBundle(table, []string{"voice=+", " place = cor "})
	require.NoError(t, err)
	assert.Equal(t, grammar.Bundle{"voice": "+", "place": "cor"}, bundle)

	bundle, err = parseBundle(table, nil)
	require.NoError(t, err)
	assert.Empty(t, bundle)

	_, err = parseBundle(table, []string{"voice"})
	assert.True(t, errors.IsInvalidInputError(err))

	_, err = parseBundle(table, []string{"height=high"})
	assert.True(t, errors.Is(err, grammar.ErrUnknownFeature))
}

func TestSegmentUnify(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"b", "{t,b}", "Segment b[+, +, lab]"},
		{"{t,b}", "b", "Segment b[+, +, lab]"},
		{"*", "d", "Segment d[+, +, cor]"},
		{"d", "*", "Segment d[+, +, cor]"},
		{"*", "{t,d}", "{d, t}"},
		{"{t,d}", "{d,a}", "{d}"},
		{"b", "b", "Segment b[+, +, lab]"},
		{"b", "d", "no match"},
		{"a", "{t,d}", "no match"},
	}
	for _, tt := range tests {
		t.Run(tt.a+"~"+tt.b, func(t *testing.T) {
			out, err := execute(t, "segment", "unify", "-f", consonants, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestSegmentUnify_JSON(t *testing.T) {
	out, err := execute(t, "--json", "segment", "unify", "-f", consonants, "b", "d")
	require.NoError(t, err)
	assert.JSONEq(t, `{"left": "Segment b[+, +, lab]", "right": "Segment d[+, +, cor]", "match": false}`, out)
}

func TestSegmentMatch(t *testing.T) {
	out, err := execute(t, "segment", "match", "-f", consonants, "d", "voice=+", "place=cor")
	require.NoError(t, err)
	assert.Equal(t, "true", strings.TrimSpace(out))

	out, err = execute(t, "segment", "match", "-f", consonants, "t", "voice=+")
	require.NoError(t, err)
	assert.Equal(t, "false", strings.TrimSpace(out))

	_, err = execute(t, "segment", "match", "-f", consonants, "q", "voice=+")
	assert.True(t, errors.Is(err, grammar.ErrUnknownSymbol))
}

func TestSegmentClass_JSON(t *testing.T) {
	out, err := execute(t, "--json", "segment", "class", "-f", consonants, "cons=+", "voice=+")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"symbol": "d", "features": {"cons": "+", "voice": "+", "place": "cor"}},
		{"symbol": "b", "features": {"cons": "+", "voice": "+", "place": "lab"}}
	]`, out)
}

func TestTableValidate(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing.json")

	out, err := execute(t, "table", "validate", consonants, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "✓ "+consonants+": 3 features, 4 segments")
	assert.Contains(t, out, "✗ "+bad)
}

func TestTableShow_NoConfiguredTable(t *testing.T) {
	_, err := execute(t, "table", "show")
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestTableShow_JSONRoundTrip(t *testing.T) {
	out, err := execute(t, "table", "show", "--format", "json", consonants)
	require.NoError(t, err)

	table, err := inventory.Loads(out)
	require.NoError(t, err)
	assert.Equal(t, loadConsonants(t).Rows(), table.Rows())
}

func TestTableValidate_ConfiguredSchema(t *testing.T) {
	_, err := execute(t, "table", "validate", consonantsCSV)
	require.Error(t, err, "place values are not binary without a schema")

	cfg := &am.Config{}
	cfg.FeatureTable.Schema = featureSchema
	out, err := executeWithConfig(t, cfg, "table", "validate", consonantsCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+consonantsCSV+": 3 features, 4 segments")
}

func TestTableValidate_SchemaFlagOverridesConfig(t *testing.T) {
	cfg := &am.Config{}
	cfg.FeatureTable.Schema = filepath.Join(t.TempDir(), "missing.yaml")
	out, err := executeWithConfig(t, cfg, "table", "validate", "--schema", featureSchema, consonantsCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+consonantsCSV)
}

func TestParseWeights(t *testing.T) {
	table := loadConsonants(t)

	options, err := parseWeights(table, []string{"b=3", " t = 0 "})
	require.NoError(t, err)
	weights := make(map[string]int, len(options))
	for _, o := range options {
		weights[o.Value] = o.Weight
	}
	assert.Equal(t, map[string]int{"t": 0, "d": 1, "b": 3, "a": 1}, weights)

	for _, pair := range []string{"b", "b=x", "b=-1", "=2"} {
		_, err := parseWeights(table, []string{pair})
		assert.True(t, errors.Is(err, errors.ErrInvalidInput), "pair %q: %v", pair, err)
	}

	_, err = parseWeights(table, []string{"z=2"})
	assert.True(t, errors.Is(err, grammar.ErrUnknownSymbol))
}

func TestSegmentRandom_Weighted(t *testing.T) {
	out, err := execute(t, "segment", "random", "-f", consonants, "-n", "20",
		"--weight", "t=0", "--weight", "d=0", "--weight", "a=0")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("b\n", 20), out)
}

func TestSegmentRandom_AllWeightsZero(t *testing.T) {
	_, err := execute(t, "segment", "random", "-f", consonants,
		"--weight", "t=0", "--weight", "d=0", "--weight", "b=0", "--weight", "a=0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
