package project

import (
	"errors"
	"sync"
	"testing"
)

func TestInMemoryStore_CreateGet(t *testing.T) {
	s := NewInMemoryStore()
	p := New("Demo", "", nil, Options{IDs: counterIDs()})

	if err := s.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := s.Get(p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Demo" || got.ID != p.ID {
		t.Errorf("Get() = %+v", got)
	}
}

func TestInMemoryStore_CreateDuplicate(t *testing.T) {
	s := NewInMemoryStore()
	p := New("Demo", "", nil, Options{IDs: counterIDs()})
	_ = s.Create(p)

	if err := s.Create(p); !errors.Is(err, ErrProjectExists) {
		t.Errorf("Create() duplicate error = %v, want ErrProjectExists", err)
	}
}

func TestInMemoryStore_CreateRequiresID(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.Create(Project{Name: "x"}); err == nil {
		t.Error("Create() with empty ID should fail")
	}
}

func TestInMemoryStore_GetMissing(t *testing.T) {
	s := NewInMemoryStore()
	if _, err := s.Get("proj_missing"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Get() error = %v, want ErrProjectNotFound", err)
	}
}

func TestInMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewInMemoryStore()
	p := New("Demo", "", nil, Options{IDs: counterIDs()})
	p.AddSegment(nil, "a", "", PlacementConstruct)
	_ = s.Create(p)

	got, _ := s.Get(p.ID)
	got.Segments[0].Code = "mutated"
	got.Segments = append(got.Segments, Segment{ID: "seg_x"})

	again, _ := s.Get(p.ID)
	if len(again.Segments) != 1 || again.Segments[0].Code != "a" {
		t.Errorf("store aliased by caller: %+v", again.Segments)
	}
}

func TestInMemoryStore_Update(t *testing.T) {
	s := NewInMemoryStore()
	p := New("Demo", "", nil, Options{IDs: counterIDs()})
	_ = s.Create(p)

	err := s.Update(p.ID, func(p *Project) error {
		p.AddSegment(nil, "a", "", PlacementConstruct)
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := s.Get(p.ID)
	if len(got.Segments) != 1 {
		t.Errorf("len(Segments) = %d, want 1", len(got.Segments))
	}
}

func TestInMemoryStore_UpdateErrorLeavesProject(t *testing.T) {
	s := NewInMemoryStore()
	p := New("Demo", "", nil, Options{IDs: counterIDs()})
	_ = s.Create(p)

	boom := errors.New("boom")
	err := s.Update(p.ID, func(p *Project) error {
		p.AddSegment(nil, "a", "", PlacementConstruct)
		p.Name = "Renamed"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, want boom", err)
	}
	got, _ := s.Get(p.ID)
	if got.Name != "Demo" || len(got.Segments) != 0 {
		t.Errorf("failed update was committed: %+v", got)
	}
}

func TestInMemoryStore_UpdateMissing(t *testing.T) {
	s := NewInMemoryStore()
	err := s.Update("proj_missing", func(*Project) error { return nil })
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Update() error = %v, want ErrProjectNotFound", err)
	}
}

func TestInMemoryStore_ListCreationOrder(t *testing.T) {
	s := NewInMemoryStore()
	ids := counterIDs()
	for _, name := range []string{"a", "b", "c"} {
		_ = s.Create(New(name, "", nil, Options{IDs: ids}))
	}
	list := s.List()
	if len(list) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(list))
	}
	for i, name := range []string{"a", "b", "c"} {
		if list[i].Name != name {
			t.Errorf("List()[%d].Name = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestInMemoryStore_ConcurrentUpdates(t *testing.T) {
	s := NewInMemoryStore()
	p := New("Demo", "", nil, Options{})
	_ = s.Create(p)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(p.ID, func(p *Project) error {
				p.AddSegment(nil, "x", "", PlacementConstruct)
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := s.Get(p.ID)
	if len(got.Segments) != 50 {
		t.Errorf("len(Segments) = %d, want 50", len(got.Segments))
	}
}
