package session_behavior_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/specialistvlad/bridgego/internal/app"
	"github.com/specialistvlad/bridgego/internal/hcl_adapter"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/testutil"
)

// harnessResult holds the outcome of running a session through the app.
type harnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// runSession writes files to a temp dir, loads them with the HCL loader and
// runs the app. Startup panics come back as errors.
func runSession(t *testing.T, cfg *app.Config, files map[string]string, modules ...registry.Module) *harnessResult {
	t.Helper()

	cfg.SessionPath = testutil.WriteSessionFiles(t, files)
	if len(modules) > 0 {
		modules = append(modules, defaultModules()...)
	}

	var testApp *app.App
	var buf *app.SafeBuffer
	var panicErr any
	func() {
		defer func() { panicErr = recover() }()
		testApp, buf = app.SetupAppTest(t, cfg, hcl_adapter.NewLoader(), modules...)
	}()
	if panicErr != nil {
		if os.Getenv("BRIDGEGO_TEST_LOGS") == "true" {
			t.Logf("--- HARNESS RECOVERED PANIC ---\n%v", panicErr)
		}
		return &harnessResult{Err: fmt.Errorf("application startup panicked | %v", panicErr)}
	}

	err := testApp.Run(context.Background())
	return &harnessResult{Output: buf.String(), Err: err, App: testApp}
}
