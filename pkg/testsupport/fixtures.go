// Package testsupport loads JSON fixtures and golden files for package
// tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// MustLoadJSON decodes the fixture at path into out, failing the test on any
// error.
func MustLoadJSON(t *testing.T, path string, out any) {
	t.Helper()

	if err := LoadJSON(path, out); err != nil {
		t.Fatalf("load fixture: %v", err)
	}
}

// LoadJSON decodes the fixture at path into out. Unknown keys are rejected so
// a typo in a fixture fails loudly instead of asserting nothing.
func LoadJSON(path string, out any) error {
	if path == "" {
		return errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("testsupport: read fixture: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("testsupport: decode %s: %w", path, err)
	}
	return nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set and
// reports whether it did, in which case the test should stop comparing.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
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
	return true
}

// Diff returns a cmp diff between want and got, empty when equal.
func Diff(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
