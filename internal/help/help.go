// Package help serves the markdown help topics.
package help

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

//go:embed topics/*.md
var topicFiles embed.FS

// Topic is one help page.
type Topic struct {
	Name    string
	Summary string
	Content string
}

// EventKind says whether a topic appeared or went away.
type EventKind int

const (
	TopicAdded EventKind = iota
	TopicRemoved
)

// Event reports a topic change to subscribers.
type Event struct {
	Kind  EventKind
	Topic *Topic
}

// Manager holds the available topics.
type Manager struct {
	mu     sync.RWMutex
	topics map[string]*Topic
	subs   []func(Event)
}

// NewManager returns a manager loaded with the built-in topics.
func NewManager() (*Manager, error) {
	m := &Manager{topics: make(map[string]*Topic)}

	entries, err := topicFiles.ReadDir("topics")
	if err != nil {
		return nil, fmt.Errorf("read topics: %w", err)
	}
	for _, entry := range entries {
		data, err := topicFiles.ReadFile(path.Join("topics", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read topic %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		m.topics[name] = parseTopic(name, string(data))
	}
	return m, nil
}

// parseTopic takes the summary from the leading "# " heading.
func parseTopic(name, content string) *Topic {
	t := &Topic{Name: name, Content: content, Summary: name}
	first, _, _ := strings.Cut(content, "\n")
	if strings.HasPrefix(first, "# ") {
		t.Summary = strings.TrimSpace(first[2:])
	}
	return t
}

// Add installs or replaces a topic.
func (m *Manager) Add(name, content string) *Topic {
	t := parseTopic(name, content)

	m.mu.Lock()
	m.topics[name] = t
	subs := append([]func(Event){}, m.subs...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(Event{Kind: TopicAdded, Topic: t})
	}
	return t
}

// Remove deletes a topic.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	t, ok := m.topics[name]
	delete(m.topics, name)
	subs := append([]func(Event){}, m.subs...)
	m.mu.Unlock()

	if ok {
		for _, fn := range subs {
			fn(Event{Kind: TopicRemoved, Topic: t})
		}
	}
	return ok
}

// Lookup returns a topic by name.
func (m *Manager) Lookup(name string) (*Topic, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.topics[name]
	return t, ok
}

// Topics returns every topic sorted by name.
func (m *Manager) Topics() []*Topic {
	m.mu.RLock()
	out := make([]*Topic, 0, len(m.topics))
	for _, t := range m.topics {
		out = append(out, t)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Subscribe calls fn with TopicAdded for every current topic, then for
// every later change.
func (m *Manager) Subscribe(fn func(Event)) {
	for _, t := range m.Topics() {
		fn(Event{Kind: TopicAdded, Topic: t})
	}
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

// Render formats markdown for a terminal of the given width. Plain output
// returns the markdown unchanged.
func Render(content string, width int, styled bool) string {
	if !styled {
		return content
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
