package render

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// fakeRunner implements Runner for testing.
type fakeRunner struct {
	mu sync.Mutex

	// Configurable returns
	output Output
	err    error

	// writeArtifact, when set, is created before Run returns.
	writeArtifact string

	// block makes Run wait for ctx cancellation.
	block bool

	// Call tracking
	calls []Command
}

func (f *fakeRunner) Run(ctx context.Context, cmd Command) (Output, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return Output{}, ctx.Err()
	}
	if f.writeArtifact != "" {
		if err := os.MkdirAll(filepath.Dir(f.writeArtifact), 0o755); err != nil {
			return Output{}, err
		}
		if err := os.WriteFile(f.writeArtifact, []byte("artifact"), 0o644); err != nil {
			return Output{}, err
		}
	}
	return f.output, f.err
}

// recordingLogger captures log messages for assertions.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Infow(msg string, _ ...any)  { l.record(msg) }
func (l *recordingLogger) Warnw(msg string, _ ...any)  { l.record(msg) }
func (l *recordingLogger) Errorw(msg string, _ ...any) { l.record(msg) }

func newTestInvoker(t *testing.T, runner Runner) (*Invoker, string) {
	t.Helper()
	root := t.TempDir()
	inv, err := NewInvoker(Config{OutputRoot: root, Runner: runner})
	if err != nil {
		t.Fatalf("NewInvoker() error = %v", err)
	}
	return inv, root
}
