package inventory

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/teranos/otml/grammar"
)

type tomlDocument struct {
	Feature      []grammar.Feature   `toml:"feature"`
	FeatureTable map[string][]string `toml:"feature_table"`
}

// DecodeTOML decodes a TOML inventory:
//
//	[[feature]]
//	label = "voice"
//	values = ["+", "-"]
//
//	[feature_table]
//	b = ["+"]
//	p = ["-"]
//
// Symbol order comes from the decoder's key metadata, i.e. document order.
func DecodeTOML(r io.Reader) (Source, error) {
	var doc tomlDocument
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return Source{}, decodeError(err, "TOML", "")
	}

	src := Source{Features: doc.Feature}
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != keyFeatureTable {
			continue
		}
		symbol := key[1]
		src.Rows = append(src.Rows, grammar.Row{Symbol: symbol, Values: doc.FeatureTable[symbol]})
	}
	return src, nil
}
