package inventory

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
)

// DecodeYAML decodes a YAML inventory. It walks the document node tree so
// that symbols keep their document order.
func DecodeYAML(r io.Reader) (Source, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return Source{}, nil
		}
		return Source{}, decodeError(err, "YAML", "")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return Source{}, invalidInput(errors.Newf("failed to decode YAML inventory: line %d: expected a mapping", root.Line), "")
	}

	var src Source
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case keyFeature:
			if err := value.Decode(&src.Features); err != nil {
				return Source{}, decodeError(err, "YAML", keyFeature)
			}
		case keyFeatureTable:
			if value.Kind != yaml.MappingNode {
				return Source{}, invalidInput(errors.Newf("failed to decode YAML inventory: line %d: %q must be a mapping", value.Line, keyFeatureTable), "")
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				symbol := value.Content[j].Value
				var values []string
				if err := value.Content[j+1].Decode(&values); err != nil {
					return Source{}, decodeError(err, "YAML", keyFeatureTable+"."+symbol)
				}
				src.Rows = append(src.Rows, grammar.Row{Symbol: symbol, Values: values})
			}
		}
	}
	return src, nil
}

// EncodeYAML writes table in the YAML source shape, symbols in table order.
func EncodeYAML(w io.Writer, table *grammar.FeatureTable) error {
	var features yaml.Node
	if err := features.Encode(table.Features().All()); err != nil {
		return errors.Wrap(err, "failed to encode features")
	}
	for _, f := range features.Content {
		if len(f.Content) == 4 {
			f.Content[3].Style = yaml.FlowStyle
		}
	}

	rows := &yaml.Node{Kind: yaml.MappingNode}
	for _, row := range table.Rows() {
		var values yaml.Node
		if err := values.Encode(row.Values); err != nil {
			return errors.Wrapf(err, "failed to encode segment %q", row.Symbol)
		}
		values.Style = yaml.FlowStyle
		rows.Content = append(rows.Content, scalar(row.Symbol), &values)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		scalar(keyFeature), &features,
		scalar(keyFeatureTable), rows,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return errors.Wrap(err, "failed to write YAML")
	}
	return enc.Close()
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
