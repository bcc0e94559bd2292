package pipeline

import (
	"bytes"
	"context"
	"os"

	"github.com/matzehuels/structogram/pkg/cache"
	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/flow"
	classio "github.com/matzehuels/structogram/pkg/io"
)

// Load reads the class named by opts and returns it with its content hash.
// The hash is taken over the canonical JSON encoding, so the same class
// hashes equally whether it arrived as JSON, TOML or a decoded value.
func Load(ctx context.Context, opts Options) (*flow.Class, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	c := opts.Class
	if c == nil {
		var err error
		if c, err = decodeClass(opts); err != nil {
			return nil, "", err
		}
	}

	var buf bytes.Buffer
	if err := classio.WriteClassJSON(c, &buf); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "encode class for hashing")
	}
	return c, cache.Hash(buf.Bytes()), nil
}

func decodeClass(opts Options) (*flow.Class, error) {
	if len(opts.Source) > 0 {
		return classio.ParseClass(opts.Source, opts.SourceFormat)
	}
	format, err := classio.FormatFromPath(opts.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "class file %s", opts.Path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Path)
	}
	return classio.ParseClass(data, format)
}

// Select picks the method to draw. A method reference wins over a caret
// line; with neither, a class with exactly one method selects it.
func Select(c *flow.Class, opts Options) (flow.Method, error) {
	switch {
	case opts.Method != "":
		m, ok := c.Lookup(opts.Method)
		if !ok {
			return flow.Method{}, errors.New(errors.ErrCodeMethodNotFound, "class %s has no method %q", c.Name, opts.Method)
		}
		return m, nil
	case opts.Line > 0:
		m, ok := c.MethodAt(opts.Line)
		if !ok {
			return flow.Method{}, errors.New(errors.ErrCodeMethodNotFound, "no method of %s contains line %d", c.Name, opts.Line)
		}
		return m, nil
	case len(c.Methods) == 1:
		return c.Methods[0], nil
	case len(c.Methods) == 0:
		return flow.Method{}, errors.New(errors.ErrCodeMethodNotFound, "class %s declares no methods", c.Name)
	}
	return flow.Method{}, errors.New(errors.ErrCodeInvalidInput, "class %s has %d methods; choose one by name or line", c.Name, len(c.Methods))
}
