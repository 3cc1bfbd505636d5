package render

import "fmt"

// Format is an output encoding selected with --output
type Format string

const (
	FormatStdout Format = "stdout"
	FormatJSON   Format = "json"
	FormatEnv    Format = "env"
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
)

// Formats lists every supported output format
var Formats = []Format{FormatStdout, FormatJSON, FormatEnv, FormatYAML, FormatCSV}

// ParseFormat validates a --output flag value
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (supported: stdout, json, env, yaml, csv)", s)
}

// DefaultFilename returns the filename used when no --file override is given.
// The stdout format shares the env encoder and its filename.
func (f Format) DefaultFilename() string {
	switch f {
	case FormatJSON:
		return "secret.json"
	case FormatYAML:
		return "secret.yaml"
	case FormatCSV:
		return "secret.csv"
	default:
		return ".env"
	}
}

// Kind tags the structural variant of a classified secret payload
type Kind int

const (
	KindKeyValue Kind = iota
	KindPlainText
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindKeyValue:
		return "key-value"
	case KindPlainText:
		return "plain-text"
	default:
		return "binary"
	}
}

// Entry is one key/value pair of a key-value secret
type Entry struct {
	Key   string
	Value string
}

// SecretValue is the canonical intermediate every encoder renders from.
// Exactly one variant is active, selected by Classify.
type SecretValue struct {
	kind    Kind
	entries []Entry
	text    string
	data    []byte
}

// KeyValueSecret builds the key-value variant, preserving entry order
func KeyValueSecret(entries []Entry) SecretValue {
	return SecretValue{kind: KindKeyValue, entries: entries}
}

// PlainTextSecret builds the plain-text variant
func PlainTextSecret(text string) SecretValue {
	return SecretValue{kind: KindPlainText, text: text}
}

// BinarySecret builds the binary variant
func BinarySecret(data []byte) SecretValue {
	return SecretValue{kind: KindBinary, data: data}
}

// Kind returns the active variant tag
func (v SecretValue) Kind() Kind {
	return v.kind
}

// Entries returns the ordered pairs of a key-value secret
func (v SecretValue) Entries() []Entry {
	return v.entries
}

// Text returns the payload of a plain-text secret
func (v SecretValue) Text() string {
	return v.text
}

// Data returns the payload of a binary secret
func (v SecretValue) Data() []byte {
	return v.data
}

// EncodedOutput is an encoder result: the rendered bytes plus the
// default filename used when no explicit path is given.
type EncodedOutput struct {
	Data     []byte
	Filename string
}
