package city

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Faultbox/skyline/internal/generator"
	"github.com/Faultbox/skyline/internal/geometry/mesh"
)

func newMeshSession(name string) *Session {
	return NewSession(name, mesh.NewScene(), generator.NewSeeded(uint64(len(name))))
}

func TestRegistry_Open(t *testing.T) {
	r := NewRegistry()

	a := r.Open("downtown", newMeshSession)
	b := r.Open("downtown", newMeshSession)
	if a != b {
		t.Error("Open should return the registered session for a known name")
	}
	if a.Name() != "downtown" {
		t.Errorf("Name() = %q, want %q", a.Name(), "downtown")
	}

	c := r.Open("harbor", newMeshSession)
	if c == a {
		t.Error("a new name should get its own session")
	}

	names := make(map[string]bool)
	r.Range(func(s *Session) bool {
		names[s.Name()] = true
		return true
	})
	if len(names) != 2 || !names["downtown"] || !names["harbor"] {
		t.Errorf("Range visited %v, want downtown and harbor", names)
	}

	visited := 0
	r.Range(func(s *Session) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("Range should stop when fn returns false, visited %d", visited)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := r.Open(fmt.Sprintf("block-%d", i%4), newMeshSession)
			if _, err := s.CreateSkyscrapers(defaultParams); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("CreateSkyscrapers failed: %v", err)
	}

	sessions := 0
	r.Range(func(s *Session) bool {
		sessions++
		if n := len(s.Skyscrapers()); n != 16 {
			t.Errorf("%s: expected 16 boxes, got %d", s.Name(), n)
		}
		return true
	})
	if sessions != 4 {
		t.Errorf("expected 4 sessions, got %d", sessions)
	}
}
