package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tocin-lang/tocin/internal/diag"
)

// RequireNoErrors fails the test immediately if diags contains anything at
// Error severity or worse.
func RequireNoErrors(t *testing.T, diags []diag.Diagnostic) {
	t.Helper()
	for _, d := range diags {
		require.Lessf(t, d.Severity, diag.Error, "unexpected diagnostic %s: %s", d.Code, d.Message)
	}
}

// RequireCode asserts diags contains at least one diagnostic with the
// given code.
func RequireCode(t *testing.T, diags []diag.Diagnostic, code string) {
	t.Helper()
	require.True(t, HasCode(diags, code), "expected a diagnostic with code %s, got %v", code, diags)
}

// AssertNoCode asserts diags contains no diagnostic with the given code.
func AssertNoCode(t *testing.T, diags []diag.Diagnostic, code string) {
	t.Helper()
	assert.False(t, HasCode(diags, code), "unexpected diagnostic with code %s: %v", code, diags)
}

// HasCode reports whether diags contains a diagnostic with the given code.
func HasCode(diags []diag.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
