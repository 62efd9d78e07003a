package catalog

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown catalog file format (want .yaml, .yml or .json)")

// Decode reads a catalog document; format is "yaml" or "json".
func Decode(r io.Reader, format string) (Catalog, error) {
	var cat Catalog
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cat); err != nil && err != io.EOF {
			return Catalog{}, errors.Wrap(err, "decoding yaml catalog")
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cat); err != nil && err != io.EOF {
			return Catalog{}, errors.Wrap(err, "decoding json catalog")
		}
	default:
		return Catalog{}, ErrUnknownFormat
	}
	return cat, nil
}

// ReadFile decodes the catalog file at `path`, picking the format from its extension.
func ReadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, errors.Wrap(err, "opening catalog file")
	}
	defer func() { _ = f.Close() }()

	return Decode(f, strings.TrimPrefix(filepath.Ext(path), "."))
}
