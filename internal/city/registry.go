package city

import (
	"golang.org/x/sync/syncmap"
)

// Registry holds named sessions that may be used from several goroutines. Each session
// still serializes its own rebuilds.
type Registry struct {
	sessions syncmap.Map // name -> *Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Open returns the session registered under name, creating it with newSession when
// there is none. newSession may run even if another caller wins the race; only one
// result is kept.
func (r *Registry) Open(name string, newSession func(name string) *Session) *Session {
	if s, ok := r.sessions.Load(name); ok {
		return s.(*Session)
	}
	s, _ := r.sessions.LoadOrStore(name, newSession(name))
	return s.(*Session)
}

// Range calls fn for every session until fn returns false.
func (r *Registry) Range(fn func(s *Session) bool) {
	r.sessions.Range(func(_, v any) bool {
		return fn(v.(*Session))
	})
}
