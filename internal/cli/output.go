package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/structogram/pkg/flow"
)

// nopCloser wraps an io.Writer with a no-op Close method.
// It lets stdout stand in for an io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// basePath derives the base output path for a method. With no output the
// input's directory and stem are used, suffixed with the method name.
// A known format extension on output is stripped.
func basePath(output, input string, m flow.Method, known []string) string {
	if output == "" {
		stem := strings.TrimSuffix(input, filepath.Ext(input))
		return stem + "." + m.Name
	}
	ext := filepath.Ext(output)
	if slices.Contains(known, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactWriteParams groups what writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string
	output    string // explicit single-file output, "-" for stdout
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format with an explicit output goes exactly there; "-" sends
// every artifact to stdout.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	var written []string
	for _, format := range p.formats {
		path := p.base + "." + format
		if p.output == "-" || (len(p.formats) == 1 && p.output != "") {
			path = p.output
		}
		out, err := openOutput(path)
		if err != nil {
			return written, fmt.Errorf("open %s: %w", path, err)
		}
		_, werr := out.Write(p.artifacts[format])
		cerr := out.Close()
		if werr != nil {
			return written, fmt.Errorf("write %s: %w", path, werr)
		}
		if cerr != nil {
			return written, fmt.Errorf("close %s: %w", path, cerr)
		}
		if path != "-" {
			written = append(written, path)
		}
	}
	return written, nil
}
