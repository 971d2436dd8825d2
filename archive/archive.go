// Package archive reads the monthly result archives served by the
// monitoring-result host. A month download is a zip file holding one
// results file per day; this package lists and extracts it from the
// opaque bytes the client returns.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// List returns the file names inside a monthly results archive, in
// archive order.
func List(data []byte) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("archive: opening zip: %w", err)
	}
	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)
	}
	return names, nil
}

// Extract writes every file in the archive under dir, creating it if
// needed. Entry names that would escape dir are rejected.
func Extract(data []byte, dir string) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("archive: opening zip: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("archive: creating %s: %w", dir, err)
	}

	for _, file := range reader.File {
		if err := extractFile(file, dir); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(file *zip.File, dir string) error {
	name := filepath.Clean(file.Name)
	if name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) || filepath.IsAbs(name) {
		return fmt.Errorf("archive: entry %q escapes the target directory", file.Name)
	}
	target := filepath.Join(dir, name)

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("archive: creating parent of %s: %w", target, err)
	}

	source, err := file.Open()
	if err != nil {
		return fmt.Errorf("archive: opening entry %q: %w", file.Name, err)
	}
	defer source.Close()

	destination, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("archive: creating %s: %w", target, err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return fmt.Errorf("archive: extracting %q: %w", file.Name, err)
	}
	return nil
}
