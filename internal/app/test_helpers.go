package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/resolvegrid/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
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

// SetupAppTest creates a new app instance for system testing. It returns the
// app, its result buffer and its log buffer.
func SetupAppTest(t *testing.T, cfg *Config, loader config.Loader) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(outBuffer, logBuffer, cfg, loader)

	t.Cleanup(func() {
		if os.Getenv("RESOLVEGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
