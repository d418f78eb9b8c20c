package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertCallOutput checks that output contains the result line for callID
// with the given encoded value.
func AssertCallOutput(t *testing.T, output, callID, encoded string) {
	t.Helper()

	want := callID + " = " + encoded
	for _, line := range strings.Split(output, "\n") {
		if line == want {
			return
		}
	}
	require.Failf(t, "call output not found", "expected line %q in output:\n%s", want, output)
}

// AssertCallFailed checks that output reports callID as failed with an error
// containing substr.
func AssertCallFailed(t *testing.T, output, callID, substr string) {
	t.Helper()

	prefix := callID + " ! "
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, prefix) && strings.Contains(line, substr) {
			return
		}
	}
	require.Failf(t, "call failure not found", "expected %q failing with %q in output:\n%s", callID, substr, output)
}
