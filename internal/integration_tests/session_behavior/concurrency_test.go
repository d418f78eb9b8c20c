package session_behavior_test

import (
	"testing"
	"time"

	"github.com/specialistvlad/bridgego/internal/app"
	"github.com/specialistvlad/bridgego/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_InstancesRunConcurrently(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	const sleep = 60 * time.Millisecond
	sleeper := testutil.NewSleeperModule(sleep)
	files := map[string]string{
		"main.hcl": `
			component "sleeper" "a" {}
			component "sleeper" "b" {}
			component "sleeper" "c" {}
			call "a" "x" { input = "a" }
			call "b" "x" { input = "b" }
			call "c" "x" { input = "c" }
		`,
	}

	// --- Act ---
	start := time.Now()
	result := runSession(t, &app.Config{WorkerCount: 3}, files, sleeper)
	elapsed := time.Since(start)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Len(t, sleeper.Records(), 3)
	assert.True(t, sleeper.Overlapped(), "separate instances should run at the same time")
	assert.Less(t, elapsed, 3*sleep)
}

func TestSession_SingleWorkerSerializes(t *testing.T) {
	t.Parallel()

	sleeper := testutil.NewSleeperModule(10 * time.Millisecond)
	files := map[string]string{
		"main.hcl": `
			component "sleeper" "a" {}
			component "sleeper" "b" {}
			call "a" "x" {}
			call "b" "x" {}
			call "a" "y" {}
		`,
	}

	result := runSession(t, &app.Config{WorkerCount: 1}, files, sleeper)

	require.NoError(t, result.Err)
	assert.False(t, sleeper.Overlapped())
	assert.Len(t, sleeper.Records(), 3)
}
