// Package parser turns a raw input line into command invocations.
//
// Tokens are separated by unquoted whitespace and invocations by unquoted
// semicolons. Single quotes keep their content literal. Double quotes allow
// ${name} references, which are replaced at parse time from a Lookup. A
// reference that cannot be resolved is kept as the literal text ${name}.
package parser

import (
	"strings"
	"unicode"

	"github.com/footprint-tools/gshell/internal/errs"
)

// Lookup resolves ${name} references.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// Token is one word of a command invocation.
type Token struct {
	Text string

	// Quoted is true when any part of the token came from a quoted section.
	Quoted bool

	// Pos is the rune offset of the token's first character in the line.
	Pos int
}

// Command is one invocation: a name followed by its arguments.
type Command struct {
	Tokens []Token
}

// Name returns the first token's text.
func (c Command) Name() string {
	if len(c.Tokens) == 0 {
		return ""
	}
	return c.Tokens[0].Text
}

// Args returns the text of every token after the name.
func (c Command) Args() []string {
	if len(c.Tokens) < 2 {
		return nil
	}
	out := make([]string, len(c.Tokens)-1)
	for i, tok := range c.Tokens[1:] {
		out[i] = tok.Text
	}
	return out
}

// Strings returns the text of every token.
func (c Command) Strings() []string {
	out := make([]string, len(c.Tokens))
	for i, tok := range c.Tokens {
		out[i] = tok.Text
	}
	return out
}

// CommandLine is the parsed form of one input line.
type CommandLine struct {
	Raw      string
	Commands []Command
}

// Empty reports whether the line held nothing to execute.
func (l *CommandLine) Empty() bool {
	return len(l.Commands) == 0
}

type parseState int

const (
	stateOutside parseState = iota
	stateSingleQuote
	stateDoubleQuote
)

type scanner struct {
	line  []rune
	env   Lookup
	state parseState

	buf     strings.Builder
	started bool
	quoted  bool
	start   int
	quoteAt int

	current  []Token
	commands []Command
}

// Parse tokenizes line, substituting references from env. env may be nil.
// An empty or blank line yields an empty CommandLine and no error.
func Parse(line string, env Lookup) (*CommandLine, error) {
	s := &scanner{line: []rune(line), env: env}
	if err := s.run(); err != nil {
		return nil, err
	}
	return &CommandLine{Raw: line, Commands: s.commands}, nil
}

// Split tokenizes line without substitution and returns the words of the
// first invocation.
func Split(line string) ([]string, error) {
	cl, err := Parse(line, nil)
	if err != nil {
		return nil, err
	}
	if cl.Empty() {
		return nil, nil
	}
	return cl.Commands[0].Strings(), nil
}

func (s *scanner) run() error {
	for i := 0; i < len(s.line); i++ {
		ch := s.line[i]

		switch s.state {
		case stateOutside:
			switch {
			case unicode.IsSpace(ch):
				s.flushToken()
			case ch == ';':
				s.flushToken()
				s.flushCommand()
			case ch == '#' && !s.started:
				s.flushCommand()
				return nil
			case ch == '\'':
				s.begin(i)
				s.quoted = true
				s.quoteAt = i
				s.state = stateSingleQuote
			case ch == '"':
				s.begin(i)
				s.quoted = true
				s.quoteAt = i
				s.state = stateDoubleQuote
			case ch == '\\':
				if i+1 >= len(s.line) {
					return errs.Parse(i, "trailing backslash")
				}
				s.begin(i)
				i++
				s.buf.WriteRune(s.line[i])
			case ch == '$' && s.peek(i+1) == '{':
				next, err := s.substitute(i, false)
				if err != nil {
					return err
				}
				i = next
			default:
				s.begin(i)
				s.buf.WriteRune(ch)
			}

		case stateSingleQuote:
			if ch == '\'' {
				s.state = stateOutside
				continue
			}
			s.buf.WriteRune(ch)

		case stateDoubleQuote:
			switch {
			case ch == '"':
				s.state = stateOutside
			case ch == '\\':
				next := s.peek(i + 1)
				if next == '"' || next == '\\' || next == '$' {
					s.buf.WriteRune(next)
					i++
				} else {
					s.buf.WriteRune(ch)
				}
			case ch == '$' && s.peek(i+1) == '{':
				next, err := s.substitute(i, true)
				if err != nil {
					return err
				}
				i = next
			default:
				s.buf.WriteRune(ch)
			}
		}
	}

	if s.state != stateOutside {
		return errs.Parse(s.quoteAt, "unterminated quote")
	}

	s.flushToken()
	s.flushCommand()
	return nil
}

func (s *scanner) peek(i int) rune {
	if i < len(s.line) {
		return s.line[i]
	}
	return 0
}

func (s *scanner) begin(i int) {
	if !s.started {
		s.started = true
		s.start = i
	}
}

// substitute handles a ${name} reference starting at i and returns the index
// of its closing brace.
func (s *scanner) substitute(i int, quoted bool) (int, error) {
	end := -1
	for j := i + 2; j < len(s.line); j++ {
		if s.line[j] == '}' {
			end = j
			break
		}
	}
	if end < 0 {
		return 0, errs.Parse(i, "unterminated variable reference")
	}

	name := string(s.line[i+2 : end])
	if strings.TrimSpace(name) == "" {
		return 0, errs.Parse(i, "empty variable reference")
	}

	value, ok := "", false
	if s.env != nil {
		value, ok = s.env.Lookup(name)
	}
	if !ok {
		value = "${" + name + "}"
	}

	// An unquoted reference that expands to nothing does not create a token.
	if value != "" || quoted {
		s.begin(i)
	}
	s.buf.WriteString(value)
	return end, nil
}

func (s *scanner) flushToken() {
	if !s.started {
		return
	}
	s.current = append(s.current, Token{
		Text:   s.buf.String(),
		Quoted: s.quoted,
		Pos:    s.start,
	})
	s.buf.Reset()
	s.started = false
	s.quoted = false
}

func (s *scanner) flushCommand() {
	if len(s.current) == 0 {
		return
	}
	s.commands = append(s.commands, Command{Tokens: s.current})
	s.current = nil
}
