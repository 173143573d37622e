package inventory

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/teranos/otml/errors"
	"github.com/teranos/otml/grammar"
)

// document keys shared by the JSON, YAML and TOML shapes
const (
	keyFeature      = "feature"
	keyFeatureTable = "feature_table"
)

// DecodeJSON decodes a JSON inventory. The "feature_table" object is streamed
// so that symbols keep their document order.
func DecodeJSON(r io.Reader) (Source, error) {
	var src Source
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return Source{}, err
	}
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return Source{}, err
		}
		switch key {
		case keyFeature:
			if err := dec.Decode(&src.Features); err != nil {
				return Source{}, decodeError(err, "JSON", keyFeature)
			}
		case keyFeatureTable:
			rows, err := decodeJSONRows(dec)
			if err != nil {
				return Source{}, err
			}
			src.Rows = rows
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return Source{}, decodeError(err, "JSON", key)
			}
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return Source{}, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Source{}, decodeError(err, "JSON", "")
		}
		return Source{}, invalidInput(errors.Newf("failed to decode JSON inventory: unexpected %v after document", tok), "")
	}
	return src, nil
}

// Loads builds a feature table from a JSON inventory string.
func Loads(data string) (*grammar.FeatureTable, error) {
	src, err := DecodeJSON(strings.NewReader(data))
	if err != nil {
		return nil, err
	}
	return src.Build()
}

func decodeJSONRows(dec *json.Decoder) ([]grammar.Row, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var rows []grammar.Row
	for dec.More() {
		symbol, err := objectKey(dec)
		if err != nil {
			return nil, err
		}
		var values []string
		if err := dec.Decode(&values); err != nil {
			return nil, decodeError(err, "JSON", keyFeatureTable+"."+symbol)
		}
		rows = append(rows, grammar.Row{Symbol: symbol, Values: values})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return rows, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return decodeError(err, "JSON", "")
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return invalidInput(errors.Newf("failed to decode JSON inventory: expected %q, got %v", want, tok), "")
	}
	return nil
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", decodeError(err, "JSON", "")
	}
	key, ok := tok.(string)
	if !ok {
		return "", invalidInput(errors.Newf("failed to decode JSON inventory: expected object key, got %v", tok), "")
	}
	return key, nil
}

// EncodeJSON writes table in the JSON source shape, symbols in table order.
func EncodeJSON(w io.Writer, table *grammar.FeatureTable) error {
	var buf bytes.Buffer
	buf.WriteString(`{"` + keyFeature + `":`)
	features, err := json.Marshal(table.Features().All())
	if err != nil {
		return errors.Wrap(err, "failed to marshal features")
	}
	buf.Write(features)

	buf.WriteString(`,"` + keyFeatureTable + `":{`)
	for i, row := range table.Rows() {
		if i > 0 {
			buf.WriteByte(',')
		}
		symbol, _ := json.Marshal(row.Symbol)
		values, err := json.Marshal(row.Values)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal segment %q", row.Symbol)
		}
		buf.Write(symbol)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteString("}}")

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return errors.Wrap(err, "failed to indent JSON")
	}
	out.WriteByte('\n')
	_, err = w.Write(out.Bytes())
	return err
}

func decodeError(err error, format, field string) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if field != "" {
		err = errors.Wrapf(err, "field %q", field)
	}
	return errors.Categorize(errors.Wrapf(err, "failed to decode %s inventory", format), errors.ErrInvalidInput)
}
