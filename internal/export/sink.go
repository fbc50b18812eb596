// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink delivers an exported file to the user and returns where it went.
type Sink interface {
	Deliver(filename string, data []byte) (string, error)
}

// FileSink writes exports into Dir. Each file is written to a temporary file
// in the same directory and renamed into place, so a failed export never
// leaves a partial file behind; the temporary file is closed and removed on
// every path.
type FileSink struct {
	Dir string
}

// Deliver writes data to Dir/filename. Path separators in filename are
// rejected.
func (s FileSink) Deliver(filename string, data []byte) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("invalid export filename %q", filename)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", filename, err)
	}

	dest := filepath.Join(dir, filename)
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("moving %s into place: %w", filename, err)
	}
	committed = true
	return dest, nil
}
