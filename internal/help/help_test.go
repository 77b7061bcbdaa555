package help

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewManager_LoadsTopics(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	var names []string
	for _, topic := range m.Topics() {
		names = append(names, topic.Name)
	}
	require.Equal(t, []string{"aliases", "groups", "manifests", "preferences", "quoting", "scripting", "variables"}, names)

	q, ok := m.Lookup("quoting")
	require.True(t, ok)
	require.Equal(t, "Quoting and substitution", q.Summary)
	require.Contains(t, q.Content, "${name}")
}

func TestManager_Subscribe(t *testing.T) {
	m, err := NewManager()
	require.NoError(t, err)

	live := map[string]string{}
	m.Subscribe(func(e Event) {
		switch e.Kind {
		case TopicAdded:
			live[e.Topic.Name] = e.Topic.Summary
		case TopicRemoved:
			delete(live, e.Topic.Name)
		}
	})
	require.Len(t, live, len(m.Topics()))

	m.Add("custom", "# Custom things\n\nbody")
	require.Equal(t, "Custom things", live["custom"])

	require.True(t, m.Remove("custom"))
	require.False(t, m.Remove("custom"))
	require.NotContains(t, live, "custom")
}

func TestParseTopic_NoHeading(t *testing.T) {
	topic := parseTopic("plain", "just text")
	require.Equal(t, "plain", topic.Summary)
}

func TestRender(t *testing.T) {
	require.Equal(t, "# Title\n", Render("# Title\n", 80, false))

	out := Render("# Title\n\nSome *text*.\n", 60, true)
	require.Contains(t, out, "Title")
	require.Contains(t, out, "text")
}
