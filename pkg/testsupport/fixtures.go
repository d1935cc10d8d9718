// Package testsupport holds golden file helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// MustLoadJSON decodes a JSON golden file into out.
func MustLoadJSON(t *testing.T, path string, out any) {
	t.Helper()

	if err := LoadJSON(path, out); err != nil {
		t.Fatalf("load golden: %v", err)
	}
}

// LoadJSON decodes a JSON file into out, returning an error for callers
// managing setup outside of *testing.T.
func LoadJSON(path string, out any) error {
	if path == "" {
		return errors.New("testsupport: golden path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("testsupport: read golden: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("testsupport: unmarshal golden %s: %w", path, err)
	}
	return nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// AssertJSONGolden refreshes the golden when UPDATE_GOLDENS is set, then
// decodes it into want and compares it with got.
func AssertJSONGolden[T any](t *testing.T, path string, got T) {
	t.Helper()

	WriteGolden(t, path, got)
	var want T
	MustLoadJSON(t, path, &want)
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}
