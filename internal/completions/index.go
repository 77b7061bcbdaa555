package completions

import (
	"sort"
	"strings"

	"github.com/footprint-tools/gshell/internal/parser"
	"github.com/footprint-tools/gshell/internal/registry"
)

// Index holds one Set per completer: commands, aliases and help topics.
// Attach it to a registry and it follows registrations and alias changes.
type Index struct {
	Commands *Set
	Aliases  *Set
	Topics   *Set
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		Commands: NewSet("commands"),
		Aliases:  NewSet("aliases"),
		Topics:   NewSet("topics"),
	}
}

// OnEvent applies a registry event.
func (x *Index) OnEvent(e registry.Event) {
	switch e.Kind {
	case registry.CommandRegistered:
		desc := ""
		if e.Descriptor != nil {
			desc = e.Descriptor.Summary
		}
		x.Commands.Add(Candidate{Name: e.Name, Description: desc})
	case registry.CommandRemoved:
		x.Commands.Remove(e.Name)
	case registry.AliasDefined:
		x.Aliases.Add(Candidate{Name: e.Name, Description: "alias for " + e.Target})
	case registry.AliasRemoved:
		x.Aliases.Remove(e.Name)
	}
}

// AddTopic makes a help topic completable after "help".
func (x *Index) AddTopic(name, title string) {
	x.Topics.Add(Candidate{Name: name, Description: title})
}

// RemoveTopic drops a help topic.
func (x *Index) RemoveTopic(name string) {
	x.Topics.Remove(name)
}

// Candidates returns the union of every set, sorted by name. When a name is
// in more than one set the command wins over the alias, the alias over the
// topic.
func (x *Index) Candidates() []Candidate {
	return union("", x.Commands, x.Aliases, x.Topics)
}

// Complete returns candidates for the word under the cursor at the end of
// line. The first word completes to command and alias names; the argument
// of "help" to topics and command names; the argument of "unalias" to
// aliases.
func (x *Index) Complete(line string) []Candidate {
	words, err := parser.Split(line)
	if err != nil {
		words = strings.Fields(line)
	}

	trailingSpace := line == "" || strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t")
	prefix := ""
	if !trailingSpace && len(words) > 0 {
		prefix = words[len(words)-1]
		words = words[:len(words)-1]
	}

	if len(words) == 0 {
		return union(prefix, x.Commands, x.Aliases)
	}
	if len(words) > 1 {
		return nil
	}

	switch words[0] {
	case "help":
		return union(prefix, x.Topics, x.Commands)
	case "unalias", "alias":
		return x.Aliases.Match(prefix)
	}
	return nil
}

// Lines expands Complete into full replacement lines, the shape line
// editors expect.
func (x *Index) Lines(line string) []string {
	cands := x.Complete(line)
	if len(cands) == 0 {
		return nil
	}

	head := line
	if i := strings.LastIndexAny(line, " \t"); i >= 0 {
		head = line[:i+1]
	} else {
		head = ""
	}

	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = head + c.Name
	}
	return out
}

func union(prefix string, sets ...*Set) []Candidate {
	seen := make(map[string]bool)
	var out []Candidate
	for _, s := range sets {
		for _, c := range s.Match(prefix) {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
