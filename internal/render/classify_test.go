package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/sm2env/pkg/provider"
)

func TestClassify_JSONObject(t *testing.T) {
	t.Run("string values keep source order", func(t *testing.T) {
		raw := &provider.RawSecret{Text: `{"DB_HOST":"localhost","DB_PORT":"5432","DB_NAME":"app"}`}

		value := Classify(raw)

		require.Equal(t, KindKeyValue, value.Kind())
		assert.Equal(t, []Entry{
			{Key: "DB_HOST", Value: "localhost"},
			{Key: "DB_PORT", Value: "5432"},
			{Key: "DB_NAME", Value: "app"},
		}, value.Entries())
	})

	t.Run("scalar non-strings take canonical form", func(t *testing.T) {
		raw := &provider.RawSecret{Text: `{"PORT":5432,"DEBUG":true,"UNSET":null}`}

		value := Classify(raw)

		require.Equal(t, KindKeyValue, value.Kind())
		assert.Equal(t, []Entry{
			{Key: "PORT", Value: "5432"},
			{Key: "DEBUG", Value: "true"},
			{Key: "UNSET", Value: "null"},
		}, value.Entries())
	})

	t.Run("nested values become compact JSON text", func(t *testing.T) {
		raw := &provider.RawSecret{Text: `{"TLS": {"cert": "a", "key": "b"}, "HOSTS": ["x", "y"]}`}

		value := Classify(raw)

		require.Equal(t, KindKeyValue, value.Kind())
		assert.Equal(t, []Entry{
			{Key: "TLS", Value: `{"cert":"a","key":"b"}`},
			{Key: "HOSTS", Value: `["x","y"]`},
		}, value.Entries())
	})

	t.Run("empty object is an empty map, not text", func(t *testing.T) {
		value := Classify(&provider.RawSecret{Text: `{}`})

		require.Equal(t, KindKeyValue, value.Kind())
		assert.Empty(t, value.Entries())
	})
}

func TestClassify_PlainTextFallback(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"free text", "hello world"},
		{"empty payload", ""},
		{"invalid JSON", `{"unterminated": `},
		{"JSON array", `["a","b"]`},
		{"JSON scalar", `42`},
		{"JSON string literal", `"quoted"`},
		{"trailing garbage after object", `{"a":"b"} extra`},
		{"multiline text", "line one\nline two\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value := Classify(&provider.RawSecret{Text: tc.text})

			require.Equal(t, KindPlainText, value.Kind())
			assert.Equal(t, tc.text, value.Text())
		})
	}
}

func TestClassify_Binary(t *testing.T) {
	t.Run("undecodable bytes stay binary", func(t *testing.T) {
		data := []byte{0x00, 0xff, 0xfe, 0x01}
		raw := &provider.RawSecret{Binary: data, IsBinary: true}

		value := Classify(raw)

		require.Equal(t, KindBinary, value.Kind())
		assert.Equal(t, data, value.Data())
	})

	t.Run("binary payload that is valid UTF-8 classifies as text", func(t *testing.T) {
		raw := &provider.RawSecret{Binary: []byte(`{"KEY":"value"}`), IsBinary: true}

		value := Classify(raw)

		require.Equal(t, KindKeyValue, value.Kind())
		assert.Equal(t, []Entry{{Key: "KEY", Value: "value"}}, value.Entries())
	})
}
