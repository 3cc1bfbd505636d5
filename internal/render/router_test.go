package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/sm2env/pkg/provider"
)

// fakeWriter records every file write the router performs
type fakeWriter struct {
	files map[string][]byte
	err   error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{files: make(map[string][]byte)}
}

func (w *fakeWriter) write(path string, data []byte) error {
	if w.err != nil {
		return w.err
	}
	w.files[path] = data
	return nil
}

func newTestRenderer(w *fakeWriter) (*Renderer, *bytes.Buffer) {
	var console bytes.Buffer
	return &Renderer{Out: &console, WriteFile: w.write}, &console
}

func TestRoute_DecisionTable(t *testing.T) {
	cases := []struct {
		format  Format
		hasPath bool
		want    destination
	}{
		{FormatStdout, true, destExplicitRaw},
		{FormatEnv, true, destExplicitEncoded},
		{FormatJSON, true, destExplicitEncoded},
		{FormatYAML, true, destExplicitEncoded},
		{FormatCSV, true, destExplicitEncoded},
		{FormatStdout, false, destConsole},
		{FormatEnv, false, destDefaultFile},
		{FormatJSON, false, destDefaultFile},
		{FormatYAML, false, destDefaultFile},
		{FormatCSV, false, destDefaultFile},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, route(tc.format, tc.hasPath),
			"format=%s hasPath=%v", tc.format, tc.hasPath)
	}
}

func TestRender_ExplicitPathOverridesDefault(t *testing.T) {
	w := newFakeWriter()
	r, console := newTestRenderer(w)

	raw := &provider.RawSecret{Name: "db", Text: `{"DB_HOST":"localhost"}`}

	dest, err := r.Render(raw, FormatJSON, "custom.json")
	require.NoError(t, err)

	assert.Equal(t, "custom.json", dest)
	assert.Contains(t, w.files, "custom.json")
	assert.NotContains(t, w.files, "secret.json")
	assert.Empty(t, console.Bytes())
}

func TestRender_DefaultFilenames(t *testing.T) {
	cases := []struct {
		format Format
		file   string
	}{
		{FormatEnv, ".env"},
		{FormatJSON, "secret.json"},
		{FormatYAML, "secret.yaml"},
		{FormatCSV, "secret.csv"},
	}

	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			w := newFakeWriter()
			r, _ := newTestRenderer(w)

			dest, err := r.Render(&provider.RawSecret{Text: `{"A":"1"}`}, tc.format, "")
			require.NoError(t, err)

			assert.Equal(t, tc.file, dest)
			assert.Contains(t, w.files, tc.file)
		})
	}
}

func TestRender_StdoutFormat(t *testing.T) {
	t.Run("console shows key-value lines", func(t *testing.T) {
		w := newFakeWriter()
		r, console := newTestRenderer(w)

		dest, err := r.Render(&provider.RawSecret{Text: `{"A":"1","B":"2"}`}, FormatStdout, "")
		require.NoError(t, err)

		assert.Equal(t, "stdout", dest)
		assert.Equal(t, "A=1\nB=2\n", console.String())
		assert.Empty(t, w.files)
	})

	t.Run("console shows a size report for binary secrets", func(t *testing.T) {
		w := newFakeWriter()
		r, console := newTestRenderer(w)

		raw := &provider.RawSecret{Binary: []byte{0xff, 0x00, 0xfe}, IsBinary: true}

		_, err := r.Render(raw, FormatStdout, "")
		require.NoError(t, err)

		assert.Equal(t, "Binary secret data (3 bytes)\n", console.String())
	})

	t.Run("with a path, the raw binary payload is written instead", func(t *testing.T) {
		w := newFakeWriter()
		r, console := newTestRenderer(w)

		payload := []byte{0xff, 0x00, 0xfe}
		raw := &provider.RawSecret{Binary: payload, IsBinary: true}

		dest, err := r.Render(raw, FormatStdout, "secret.bin")
		require.NoError(t, err)

		assert.Equal(t, "secret.bin", dest)
		assert.Equal(t, payload, w.files["secret.bin"])
		assert.Empty(t, console.Bytes())
	})

	t.Run("with a path, plain text is written byte-for-byte", func(t *testing.T) {
		w := newFakeWriter()
		r, _ := newTestRenderer(w)

		raw := &provider.RawSecret{Text: "hello"}

		dest, err := r.Render(raw, FormatStdout, "out.txt")
		require.NoError(t, err)

		assert.Equal(t, "out.txt", dest)
		assert.Equal(t, "hello", string(w.files["out.txt"]))
	})

	t.Run("with a path, key-value secrets keep the line form", func(t *testing.T) {
		w := newFakeWriter()
		r, _ := newTestRenderer(w)

		raw := &provider.RawSecret{Text: `{"A":"1","B":"2"}`}

		_, err := r.Render(raw, FormatStdout, "out.env")
		require.NoError(t, err)

		assert.Equal(t, "A=1\nB=2\n", string(w.files["out.env"]))
	})
}

func TestRender_BinaryJSONSizeReport(t *testing.T) {
	w := newFakeWriter()
	r, _ := newTestRenderer(w)

	raw := &provider.RawSecret{Binary: bytes.Repeat([]byte{0xff}, 42), IsBinary: true}

	dest, err := r.Render(raw, FormatJSON, "")
	require.NoError(t, err)
	require.Equal(t, "secret.json", dest)

	var got map[string]int
	require.NoError(t, json.Unmarshal(w.files["secret.json"], &got))
	assert.Equal(t, 42, got["size_bytes"])
}

func TestRender_ErrorStages(t *testing.T) {
	t.Run("write failures are tagged with the write stage", func(t *testing.T) {
		w := newFakeWriter()
		w.err = errors.New("disk full")
		r, _ := newTestRenderer(w)

		_, err := r.Render(&provider.RawSecret{Text: "x"}, FormatEnv, "")

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, StageWrite, renderErr.Stage)
		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("encoder failures are tagged with the encode stage", func(t *testing.T) {
		w := newFakeWriter()
		r, _ := newTestRenderer(w)

		// Invalid UTF-8 in a text payload classifies as plain text and
		// cannot be represented as a YAML scalar.
		raw := &provider.RawSecret{Text: "\xff\xfe"}

		_, err := r.Render(raw, FormatYAML, "")

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, StageEncode, renderErr.Stage)

		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Equal(t, FormatYAML, encErr.Format)
		assert.Empty(t, w.files, "no partial output is left behind")
	})
}

func TestRender_WholeFileWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.env")

	r := NewRenderer()
	r.Out = &bytes.Buffer{}

	raw := &provider.RawSecret{Text: `{"A":"1"}`}
	dest, err := r.Render(raw, FormatEnv, path)
	require.NoError(t, err)
	assert.Equal(t, path, dest)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(content))

	// A second render truncates, never appends
	_, err = r.Render(&provider.RawSecret{Text: `{"B":"2"}`}, FormatEnv, path)
	require.NoError(t, err)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "B=2\n", string(content))
}
