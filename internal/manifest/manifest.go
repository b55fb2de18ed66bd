package manifest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/vk/shaderbuild/internal/ctxlog"
)

// FileName is the manifest name looked up inside the shader source directory.
const FileName = "compile.csv"

// Load reads the manifest at path. Each entry is echoed to progress on its
// own line as soon as it is parsed; pass io.Discard to silence it.
func Load(ctx context.Context, path string, progress io.Writer) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading shader manifest.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	shaders, err := Parse(f, progress)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		if errors.Is(err, ErrEmpty) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, &ReadError{Path: path, Err: err}
	}

	logger.Debug("Shader manifest loaded.", "path", path, "entries", len(shaders))
	return shaders, nil
}

// Parse reads manifest entries from r. Quoting is lenient: a quote that does
// not open a field is kept as a literal character, so `tri,sk"y` yields
// "tri" and `sk"y`. It returns ErrEmpty when r holds no non-blank field, a
// *ParseError for CSV the reader still rejects, and the raw reader error
// otherwise.
func Parse(r io.Reader, progress io.Writer) ([]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var shaders []string
	named := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Column: csvErr.Column, Err: csvErr.Err}
			}
			return nil, err
		}

		for _, field := range record {
			name := StripSpace(field)
			shaders = append(shaders, name)
			fmt.Fprintln(progress, name)
			if name != "" {
				named++
			}
		}
	}

	// A manifest made only of blank fields names nothing to build.
	if named == 0 {
		return nil, ErrEmpty
	}
	return shaders, nil
}

// StripSpace removes every whitespace rune from s, including interior ones.
func StripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
