package project

import (
	"fmt"
	"sync"
)

// Store holds projects for the lifetime of the process.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: Get and List return deep copies; callers never alias stored values.
// - Errors: missing IDs return ErrProjectNotFound; duplicate IDs return ErrProjectExists.
type Store interface {
	// Create inserts a new project.
	Create(p Project) error

	// Get returns a copy of the project with the given ID.
	Get(id string) (Project, error)

	// Update runs fn against the stored project. If fn returns an error the
	// stored project is left unmodified and the error is returned.
	Update(id string, fn func(p *Project) error) error

	// List returns copies of all projects in creation order.
	List() []Project
}

// InMemoryStore is a map-backed Store with no persistence.
type InMemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*Project
	order    []string
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		projects: make(map[string]*Project),
	}
}

// Create inserts a copy of p.
func (s *InMemoryStore) Create(p Project) error {
	if p.ID == "" {
		return fmt.Errorf("project ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.projects[p.ID]; exists {
		return fmt.Errorf("%w: %s", ErrProjectExists, p.ID)
	}
	owned := p.Clone()
	s.projects[p.ID] = &owned
	s.order = append(s.order, p.ID)
	return nil
}

// Get returns a copy of the project with the given ID.
func (s *InMemoryStore) Get(id string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return p.Clone(), nil
}

// Update applies fn to a working copy and commits it only when fn succeeds.
func (s *InMemoryStore) Update(id string, fn func(p *Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	working := p.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	// Identity is immutable.
	working.ID = p.ID
	s.projects[id] = &working
	return nil
}

// List returns copies of all projects in creation order.
func (s *InMemoryStore) List() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.projects[id].Clone())
	}
	return out
}
