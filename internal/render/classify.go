package render

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vietdv277/sm2env/pkg/provider"
)

// Classify maps a raw fetch result onto exactly one SecretValue variant.
// It never fails: every payload has a defined fallback. Fetch errors are
// reported to the caller before classification is ever invoked.
//
// A binary payload that happens to be valid UTF-8 is treated as text and
// classified like a string payload.
func Classify(raw *provider.RawSecret) SecretValue {
	text := raw.Text
	if raw.IsBinary {
		if !utf8.Valid(raw.Binary) {
			return BinarySecret(raw.Binary)
		}
		text = string(raw.Binary)
	}

	if entries, ok := parseObjectEntries(text); ok {
		return KeyValueSecret(entries)
	}
	return PlainTextSecret(text)
}

// parseObjectEntries walks a JSON object token by token so that member
// order survives; unmarshalling into a Go map would lose it.
// Returns ok=false for anything that is not a single well-formed JSON
// object document (arrays, bare scalars, trailing garbage, parse errors).
func parseObjectEntries(text string) ([]Entry, bool) {
	dec := json.NewDecoder(strings.NewReader(text))

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	entries := []Entry{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}

		entries = append(entries, Entry{Key: key, Value: memberString(value)})
	}

	if _, err := dec.Token(); err != nil { // closing brace
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF { // no trailing content
		return nil, false
	}

	return entries, true
}

// memberString renders one object member value as a string: strings
// verbatim, other scalars in canonical JSON form, and nested structures
// as their compact JSON text. Total by construction.
func memberString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err == nil {
		return buf.String()
	}
	return string(bytes.TrimSpace(raw))
}
