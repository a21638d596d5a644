package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
)

// AssertFileContains asserts that a file contains the expected substring.
func AssertFileContains(t testing.TB, path, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)

	assert.Contains(t, string(content), expected, msgAndArgs...)
}

// AssertFileNotContains asserts that a file does not contain the substring.
func AssertFileNotContains(t testing.TB, path, unexpected string, msgAndArgs ...interface{}) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read file: %s", path)

	assert.NotContains(t, string(content), unexpected, msgAndArgs...)
}

// AssertYAMLEquals asserts that two YAML strings are semantically equal.
func AssertYAMLEquals(t testing.TB, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedDoc, actualDoc interface{}
	require.NoError(t, yaml.Unmarshal([]byte(expected), &expectedDoc), "failed to parse expected YAML")
	require.NoError(t, yaml.Unmarshal([]byte(actual), &actualDoc), "failed to parse actual YAML")

	assert.Equal(t, expectedDoc, actualDoc, msgAndArgs...)
}

// AssertUserError asserts that err carries a guide.UserError with code.
func AssertUserError(t testing.TB, err error, code string, msgAndArgs ...interface{}) {
	t.Helper()

	require.Error(t, err)
	ue := guide.GetUserError(err)
	require.NotNil(t, ue, "expected a UserError, got %T: %v", err, err)
	assert.Equal(t, code, ue.Code, msgAndArgs...)
}
