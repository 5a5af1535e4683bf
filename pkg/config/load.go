package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/folio/pkg/errors"
)

// Supported settings file formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// LoadFile reads a settings tree from a .toml or .json file.
func LoadFile(path string) (Tree, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read settings %s", path)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	t, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "load %s", path)
	}
	return t, nil
}

// LoadFiles loads each path in order. The returned slice keeps the order,
// so the first file is the most authoritative merge source.
func LoadFiles(paths ...string) ([]Tree, error) {
	trees := make([]Tree, 0, len(paths))
	for _, p := range paths {
		t, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// Parse decodes settings data in the given format ("toml" or "json").
func Parse(data []byte, format string) (Tree, error) {
	m := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported settings format %q (must be toml or json)", format)
	}
	return Tree(m), nil
}

// EncodeTOML writes t to w as TOML.
func EncodeTOML(w io.Writer, t Tree) error {
	return toml.NewEncoder(w).Encode(map[string]any(plain(t)))
}
