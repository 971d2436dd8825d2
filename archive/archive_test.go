package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zip"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	for name, content := range entries {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("creating entry %q: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("writing entry %q: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buffer.Bytes()
}

func TestListNames(t *testing.T) {
	t.Parallel()
	data := buildZip(t, map[string]string{
		"20260801.json": `[]`,
	})

	names, err := List(data)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"20260801.json"}) {
		t.Errorf("names: got %v", names)
	}
}

func TestExtractRoundTrip(t *testing.T) {
	t.Parallel()
	data := buildZip(t, map[string]string{
		"20260801.json":       `[{"title":"Hello"}]`,
		"daily/20260802.json": `[]`,
	})

	dir := t.TempDir()
	if err := Extract(data, filepath.Join(dir, "202608")); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "202608", "20260801.json"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(content) != `[{"title":"Hello"}]` {
		t.Errorf("content: got %q", content)
	}

	if _, err := os.Stat(filepath.Join(dir, "202608", "daily", "20260802.json")); err != nil {
		t.Errorf("nested entry not extracted: %v", err)
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	t.Parallel()
	data := buildZip(t, map[string]string{
		"../evil.json": `{}`,
	})

	dir := t.TempDir()
	if err := Extract(data, filepath.Join(dir, "out")); err == nil {
		t.Fatalf("expected an error for a traversal entry")
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.json")); err == nil {
		t.Errorf("traversal entry was written outside the target directory")
	}
}

func TestListRejectsGarbage(t *testing.T) {
	t.Parallel()
	if _, err := List([]byte("this is not a zip")); err == nil {
		t.Errorf("expected an error for non-zip bytes")
	}
}
