package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/structogram/pkg/errors"
	"github.com/matzehuels/structogram/pkg/flow"
)

// Format is a class file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported class file extension %q (want .json or .toml)", filepath.Ext(path))
}

// ReadClass decodes a class from r in the given format. ReadClass does not
// close r.
func ReadClass(r io.Reader, format Format) (*flow.Class, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "read class")
	}
	return ParseClass(data, format)
}

// ParseClass decodes a class from data in the given format.
func ParseClass(data []byte, format Format) (*flow.Class, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode toml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported class format %q", format)
	}
	if raw == nil {
		return nil, errors.New(errors.ErrCodeInvalidModel, "class file is empty")
	}
	return decoder{}.class(raw)
}

// ImportClass reads a class file, choosing the format from its extension.
func ImportClass(path string) (*flow.Class, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadClass(f, format)
}
