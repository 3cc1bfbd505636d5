package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// sizeField names the descriptor emitted for binary payloads in the
// structured formats; binary content itself is never embedded.
const sizeField = "size_bytes"

// EncodingError reports a field that cannot be represented in the target
// format even after escaping was attempted.
type EncodingError struct {
	Format Format
	Field  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode field %q as %s: %s", e.Field, e.Format, e.Reason)
}

// Encode renders a classified secret value into the requested format.
// Each encoder is pure: the same value always yields identical bytes.
func Encode(v SecretValue, format Format) (EncodedOutput, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data = encodeJSON(v)
	case FormatYAML:
		data, err = encodeYAML(v)
	case FormatCSV:
		data = encodeCSV(v)
	default: // env and stdout share one encoder
		data = encodeEnv(v)
	}
	if err != nil {
		return EncodedOutput{}, err
	}

	return EncodedOutput{Data: data, Filename: format.DefaultFilename()}, nil
}

// encodeEnv renders KEY=VALUE lines, one per entry in map order, values
// verbatim without quoting. Plain text passes through untouched. Binary
// payloads become a byte-count line; raw bytes only ever reach a file
// through the stdout+--file path, never through this encoder.
func encodeEnv(v SecretValue) []byte {
	switch v.Kind() {
	case KindKeyValue:
		var buf bytes.Buffer
		for _, e := range v.Entries() {
			buf.WriteString(e.Key)
			buf.WriteByte('=')
			buf.WriteString(e.Value)
			buf.WriteByte('\n')
		}
		return buf.Bytes()
	case KindPlainText:
		return []byte(v.Text())
	default:
		return []byte(fmt.Sprintf("Binary secret data (%d bytes)\n", len(v.Data())))
	}
}

// encodeJSON renders a pretty-printed JSON document. Key-value secrets
// are assembled by hand because encoding/json sorts map keys and the
// source order has to survive; individual keys and values still go
// through json.Marshal for escaping.
func encodeJSON(v SecretValue) []byte {
	switch v.Kind() {
	case KindKeyValue:
		entries := v.Entries()
		if len(entries) == 0 {
			return []byte("{}")
		}
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, e := range entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString("\n  ")
			buf.Write(jsonString(e.Key))
			buf.WriteString(": ")
			buf.Write(jsonString(e.Value))
		}
		buf.WriteString("\n}")
		return buf.Bytes()
	case KindPlainText:
		return jsonString(v.Text())
	default:
		return []byte(fmt.Sprintf("{\n  %q: %d\n}", sizeField, len(v.Data())))
	}
}

// jsonString marshals a string literal; encoding/json cannot fail on
// strings (invalid UTF-8 is replaced with U+FFFD).
func jsonString(s string) []byte {
	data, err := json.Marshal(s)
	if err != nil {
		return []byte(`""`)
	}
	return data
}

// encodeYAML mirrors the JSON encoder's variant handling in YAML block
// style. Scalars that need escaping fall back to double-quoted style;
// only content that stays unrepresentable afterwards is an error.
func encodeYAML(v SecretValue) ([]byte, error) {
	var doc *yaml.Node

	switch v.Kind() {
	case KindKeyValue:
		doc = &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range v.Entries() {
			key, err := yamlString(e.Key, e.Key)
			if err != nil {
				return nil, err
			}
			value, err := yamlString(e.Value, e.Key)
			if err != nil {
				return nil, err
			}
			doc.Content = append(doc.Content, key, value)
		}
	case KindPlainText:
		node, err := yamlString(v.Text(), "value")
		if err != nil {
			return nil, err
		}
		doc = node
	default:
		doc = &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: sizeField},
				{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(len(v.Data()))},
			},
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, &EncodingError{Format: FormatYAML, Field: fieldName(v), Reason: err.Error()}
	}
	return data, nil
}

// yamlString builds a string scalar node, switching to double-quoted
// style when the content carries control characters the plain and
// literal styles cannot hold.
func yamlString(s, field string) (*yaml.Node, error) {
	if !utf8.ValidString(s) {
		return nil, &EncodingError{Format: FormatYAML, Field: field, Reason: "payload is not valid UTF-8"}
	}
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if needsQuotedStyle(s) {
		node.Style = yaml.DoubleQuotedStyle
	}
	return node, nil
}

// needsQuotedStyle reports whether a scalar contains C0 control
// characters (other than newline/tab) that require escaped rendering.
func needsQuotedStyle(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\t' {
			return true
		}
		if r == 0x7f {
			return true
		}
	}
	return false
}

func fieldName(v SecretValue) string {
	if v.Kind() == KindKeyValue && len(v.Entries()) > 0 {
		return v.Entries()[0].Key
	}
	return "value"
}

// encodeCSV renders an RFC 4180 document with a key,value header and \n
// line endings. encoding/csv wraps fields containing commas, quotes, or
// newlines in double quotes and doubles embedded quotes.
func encodeCSV(v SecretValue) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"key", "value"})
	switch v.Kind() {
	case KindKeyValue:
		for _, e := range v.Entries() {
			_ = w.Write([]string{e.Key, e.Value})
		}
	case KindPlainText:
		_ = w.Write([]string{"value", v.Text()})
	default:
		_ = w.Write([]string{sizeField, strconv.Itoa(len(v.Data()))})
	}
	w.Flush()

	return buf.Bytes()
}
