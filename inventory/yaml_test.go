package inventory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/otml/errors"
)

func TestDecodeYAML_Order(t *testing.T) {
	src, err := DecodeYAML(strings.NewReader(`
feature:
  - label: voice
    values: ["+", "-"]
feature_table:
  z: ["+"]
  a: ["-"]
  m: ["+"]
`))
	require.NoError(t, err)
	require.Len(t, src.Rows, 3)
	assert.Equal(t, "z", src.Rows[0].Symbol)
	assert.Equal(t, "a", src.Rows[1].Symbol)
	assert.Equal(t, "m", src.Rows[2].Symbol)
}

func TestDecodeYAML_EmptyDocument(t *testing.T) {
	src, err := DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, src.Rows)
}

func TestDecodeYAML_Malformed(t *testing.T) {
	for name, input := range map[string]string{
		"sequence root":     "- a\n- b\n",
		"table is sequence": "feature_table:\n  - b\n",
		"values not list":   "feature_table:\n  b: plus\n",
		"bad syntax":        "feature: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(input))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInputError(err), "got %v", err)
		})
	}
}

func TestEncodeYAML_Shape(t *testing.T) {
	table, err := Loads(`{
		"feature": [{"label": "voice", "values": ["+", "-"]}],
		"feature_table": {"p": ["-"], "b": ["+"]}
	}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, table))
	out := buf.String()

	assert.Contains(t, out, "feature:\n")
	assert.Contains(t, out, "feature_table:\n")
	assert.Contains(t, out, "label: voice")
	assert.Less(t, strings.Index(out, "p:"), strings.Index(out, "b:"))
}
