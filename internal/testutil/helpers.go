// Package testutil provides test helpers and utilities for sanaguide tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempConfigDir creates a temporary directory for test configuration files.
// It is removed when the test finishes.
func TempConfigDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "sanaguide-test-*")
	require.NoError(t, err, "failed to create temp directory")

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("warning: failed to clean up temp directory: %v", err)
		}
	})

	return dir
}

// WriteTempFile writes content to a file in the specified directory.
func WriteTempFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err, "failed to write temp file: %s", filename)

	return path
}

// UnsetEnv unsets an environment variable for the duration of the test.
func UnsetEnv(t *testing.T, key string) {
	t.Helper()

	original, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))

	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, original)
		}
	})
}
