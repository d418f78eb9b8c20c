package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/bridgego/internal/app"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0600), "failed to set up test file")
	return filePath
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntax error makes the loader fail inside app.NewApp(), which panics.
	filePath := writeSession(t, `
		component "echo" "a" {
			config = {
		// Missing closing braces here
	`)
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, []string{filePath})

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EchoSession(t *testing.T) {
	t.Parallel()

	filePath := writeSession(t, `
		component "echo" "greeter" {
			config = { greeting = "hello" }
		}
		call "greeter" "first" {
			input = { message = "hi", tags = ["a", atom("b")], nothing = atom("nil") }
		}
	`)
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"--log-level", "error", filePath})

	require.NoError(t, err)
	require.Contains(t, out.String(), `call.greeter.first = {"message":"hi","nothing":null,"tags":["a","b"]}`)
}

func TestRun_FailedCallsExitWithError(t *testing.T) {
	t.Parallel()

	filePath := writeSession(t, `
		component "echo" "e" {}
		call "e" "inf" {
			input = jsondecode("1e400")
		}
	`)
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"--strict-numbers", "--log-level", "error", filePath})
	require.ErrorIs(t, err, app.ErrCallsFailed)
	require.Contains(t, out.String(), "call.e.inf ! ")
}
