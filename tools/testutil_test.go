package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonwraymond/toolscene/project"
	"github.com/jonwraymond/toolscene/render"
)

// fakeRenderer implements Renderer for testing.
type fakeRenderer struct {
	mu    sync.Mutex
	calls []render.Request
	root  string
	err   error
}

func (f *fakeRenderer) Invoke(_ context.Context, req render.Request) (render.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.err != nil {
		return render.Result{}, f.err
	}
	return render.Result{Path: render.ArtifactPath(f.root, req)}, nil
}

func (f *fakeRenderer) requests() []render.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]render.Request(nil), f.calls...)
}

// sequentialIDs returns deterministic identities.
func sequentialIDs() project.IDGenerator {
	var mu sync.Mutex
	n := map[project.Kind]int{}
	return func(kind project.Kind) string {
		mu.Lock()
		defer mu.Unlock()
		n[kind]++
		return fmt.Sprintf("%s_%08d", kind, n[kind])
	}
}

type testEnv struct {
	svc      *Service
	renderer *fakeRenderer
	codeDir  string
}

func newTestService(t *testing.T) testEnv {
	t.Helper()
	root := t.TempDir()
	renderer := &fakeRenderer{root: filepath.Join(root, "media")}
	codeDir := filepath.Join(root, "code")
	svc, err := NewService(Config{
		Store:    project.NewInMemoryStore(),
		Renderer: renderer,
		CodeDir:  codeDir,
		IDs:      sequentialIDs(),
		Now:      func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return testEnv{svc: svc, renderer: renderer, codeDir: codeDir}
}

func mustCreate(t *testing.T, svc *Service, name string) string {
	t.Helper()
	resp, err := svc.CreateProject(context.Background(), CreateProjectRequest{Name: name})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	return resp.ProjectID
}

func mustAdd(t *testing.T, svc *Service, projectID, code, placement string) string {
	t.Helper()
	resp, err := svc.AddSegment(context.Background(), AddSegmentRequest{
		ProjectID: projectID,
		Code:      code,
		Placement: placement,
	})
	if err != nil {
		t.Fatalf("AddSegment() error = %v", err)
	}
	return resp.SegmentID
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("ReadDir(%s) error = %v", dir, err)
	}
	return entries
}
