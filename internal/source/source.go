// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads result sets from JSON or YAML files and keeps them in a
// SQLite cache so a set can be delivered to the viewer again later.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citation-view/pkg/types"
)

// ErrNoRecords is returned when a cache key holds no result set.
var ErrNoRecords = errors.New("no records")

// ReadJSON decodes a JSON array of records, as returned by the search
// service. Unknown fields are ignored; missing or null fields stay absent.
func ReadJSON(r io.Reader) ([]types.Record, error) {
	var recs []types.Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding JSON records: %w", err)
	}
	return recs, nil
}

// ReadYAML decodes a YAML sequence of records using the same field names as
// the JSON form.
func ReadYAML(r io.Reader) ([]types.Record, error) {
	var recs []types.Record
	if err := yaml.NewDecoder(r).Decode(&recs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding YAML records: %w", err)
	}
	return recs, nil
}

// LoadFile reads records from path, choosing the decoder by extension:
// .yaml and .yml are YAML, anything else is JSON. A path of "-" reads JSON
// from stdin.
func LoadFile(path string) ([]types.Record, error) {
	if path == "-" {
		return ReadJSON(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return ReadJSON(f)
	}
}
