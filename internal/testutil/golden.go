// Package testutil provides shared helpers for weft's tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// Golden compares got against the golden file at path. Run the tests with
// WEFT_UPDATE_GOLDEN=1 to rewrite the golden files from current output.
func Golden(t *testing.T, path string, got []byte) {
	t.Helper()
	if os.Getenv("WEFT_UPDATE_GOLDEN") == "1" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("updating golden file %s: %v", path, err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading golden file %s (set WEFT_UPDATE_GOLDEN=1 to create): %v", path, err)
	}
	if !bytes.Equal(want, got) {
		t.Errorf("output does not match %s\n--- want\n%s\n--- got\n%s", path, want, got)
	}
}

// ReadFixture reads a test fixture file, failing the test on error.
func ReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", path, err)
	}
	return data
}
