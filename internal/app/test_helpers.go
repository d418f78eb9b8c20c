package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/bridgego/internal/config"
	"github.com/specialistvlad/bridgego/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Logs and call
// output both go to the returned buffer.
func SetupAppTest(t *testing.T, appConfig *Config, loader config.Loader, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(buf, appConfig, loader, modules...)

	t.Cleanup(func() {
		if os.Getenv("BRIDGEGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})

	return testApp, buf
}
