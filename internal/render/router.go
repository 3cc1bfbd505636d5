package render

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/vietdv277/sm2env/pkg/provider"
)

// Stage tags which step of a render failed
type Stage string

const (
	StageEncode Stage = "encode"
	StageWrite  Stage = "write"
)

// RenderError wraps an encoder or write failure with the stage it
// happened in.
type RenderError struct {
	Stage Stage
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// destination is one cell of the format × path-present decision table
type destination int

const (
	destExplicitRaw     destination = iota // --file with stdout format: raw payload to the path
	destExplicitEncoded                    // --file with any other format: encoded bytes to the path
	destConsole                            // stdout format, no --file: presentation form to console
	destDefaultFile                        // everything else: encoded bytes to the default filename
)

// route applies the precedence rules: an explicit path always wins over
// the default filename, and stdout+path is the single case that changes
// which payload is written, not just where.
func route(format Format, hasPath bool) destination {
	switch {
	case hasPath && format == FormatStdout:
		return destExplicitRaw
	case hasPath:
		return destExplicitEncoded
	case format == FormatStdout:
		return destConsole
	default:
		return destDefaultFile
	}
}

// Renderer routes one encoded secret to its destination. Out and
// WriteFile are swappable for tests; the defaults write to the real
// stdout and the filesystem.
type Renderer struct {
	Out       io.Writer
	WriteFile func(path string, data []byte) error
}

// NewRenderer returns a Renderer wired to stdout and os.WriteFile
func NewRenderer() *Renderer {
	return &Renderer{
		Out:       os.Stdout,
		WriteFile: writeWholeFile,
	}
}

// writeWholeFile truncates and rewrites path in one call. Secret
// material gets owner-only permissions.
func writeWholeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o600)
}

// Render classifies a raw fetch result, encodes it in the requested
// format, and writes it to the routed destination. It returns a
// description of where the output went ("stdout" or a file path).
func (r *Renderer) Render(raw *provider.RawSecret, format Format, path string) (string, error) {
	value := Classify(raw)

	switch route(format, path != "") {
	case destExplicitRaw:
		// Byte-for-byte fidelity for text and binary payloads; key-value
		// secrets keep the KEY=VALUE line form of plain stdout rendering.
		if err := r.WriteFile(path, rawPayload(value, raw)); err != nil {
			return "", &RenderError{Stage: StageWrite, Err: err}
		}
		return path, nil

	case destExplicitEncoded:
		out, err := Encode(value, format)
		if err != nil {
			return "", &RenderError{Stage: StageEncode, Err: err}
		}
		if err := r.WriteFile(path, out.Data); err != nil {
			return "", &RenderError{Stage: StageWrite, Err: err}
		}
		return path, nil

	case destConsole:
		out, err := Encode(value, FormatStdout)
		if err != nil {
			return "", &RenderError{Stage: StageEncode, Err: err}
		}
		if _, err := r.Out.Write(terminated(out.Data)); err != nil {
			return "", &RenderError{Stage: StageWrite, Err: err}
		}
		return "stdout", nil

	default:
		out, err := Encode(value, format)
		if err != nil {
			return "", &RenderError{Stage: StageEncode, Err: err}
		}
		if err := r.WriteFile(out.Filename, out.Data); err != nil {
			return "", &RenderError{Stage: StageWrite, Err: err}
		}
		return out.Filename, nil
	}
}

// rawPayload picks the bytes written for the stdout+--file case: the
// untouched payload for text and binary secrets, KEY=VALUE lines for
// key-value secrets.
func rawPayload(v SecretValue, raw *provider.RawSecret) []byte {
	if v.Kind() == KindKeyValue {
		return encodeEnv(v)
	}
	return raw.Payload()
}

// terminated ensures console output ends with a newline without ever
// touching file output.
func terminated(data []byte) []byte {
	if len(data) == 0 || bytes.HasSuffix(data, []byte("\n")) {
		return data
	}
	return append(data, '\n')
}
