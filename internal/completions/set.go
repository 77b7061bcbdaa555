// Package completions keeps the tab-completion candidates of a shell in
// step with its registry.
package completions

import (
	"sort"
	"strings"
	"sync"
)

// Candidate is one completion: a name and a short description.
type Candidate struct {
	Name        string
	Description string
}

// Set is a name-keyed group of candidates fed by one completer.
type Set struct {
	name string

	mu    sync.RWMutex
	items map[string]Candidate
}

// NewSet creates an empty set.
func NewSet(name string) *Set {
	return &Set{name: name, items: make(map[string]Candidate)}
}

// Name identifies the completer behind the set.
func (s *Set) Name() string {
	return s.name
}

// Add inserts c, or updates its description if the name is present.
func (s *Set) Add(c Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.Name] = c
}

// Remove deletes a candidate. Removing an absent name does nothing.
func (s *Set) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, name)
}

// Contains reports whether name is a candidate.
func (s *Set) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[name]
	return ok
}

// Len returns the number of candidates.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Candidates returns the candidates sorted by name.
func (s *Set) Candidates() []Candidate {
	return s.Match("")
}

// Match returns the candidates whose name starts with prefix, sorted.
func (s *Set) Match(prefix string) []Candidate {
	s.mu.RLock()
	out := make([]Candidate, 0, len(s.items))
	for name, c := range s.items {
		if strings.HasPrefix(name, prefix) {
			out = append(out, c)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
