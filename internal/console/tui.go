package console

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/gshell/internal/ui/style"
)

type lineKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	EOF    key.Binding
}

var lineKeys = lineKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Cancel: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "discard line")),
	EOF:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "end session")),
}

type lineOutcome int

const (
	lineEditing lineOutcome = iota
	lineSubmitted
	lineCancelled
	lineEOF
)

// lineModel edits a single line; Tab accepts the current suggestion.
type lineModel struct {
	input    textinput.Model
	complete Completer
	outcome  lineOutcome
}

func newLineModel(prompt string, complete Completer) lineModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.CharLimit = 0
	ti.ShowSuggestions = complete != nil
	ti.CompletionStyle = lipgloss.NewStyle().Faint(true)
	ti.Focus()
	return lineModel{input: ti, complete: complete}
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, lineKeys.Submit):
			m.outcome = lineSubmitted
			return m, tea.Quit
		case key.Matches(msg, lineKeys.Cancel):
			m.outcome = lineCancelled
			return m, tea.Quit
		case key.Matches(msg, lineKeys.EOF):
			if m.input.Value() == "" {
				m.outcome = lineEOF
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.complete != nil {
		m.input.SetSuggestions(m.complete(m.input.Value()))
	}
	return m, cmd
}

func (m lineModel) View() string {
	if m.outcome == lineCancelled {
		return m.input.Prompt + m.input.Value() + style.Muted("^C") + "\n"
	}
	if m.outcome != lineEditing {
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View()
}

// TUIReader reads each line with a short-lived inline bubbletea program.
type TUIReader struct {
	in       io.Reader
	out      io.Writer
	complete Completer
}

func NewTUIReader(in io.Reader, out io.Writer, complete Completer) *TUIReader {
	return &TUIReader{in: in, out: out, complete: complete}
}

func (r *TUIReader) ReadLine(prompt string) (string, error) {
	p := tea.NewProgram(
		newLineModel(prompt, r.complete),
		tea.WithInput(r.in),
		tea.WithOutput(r.out),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			return "", ErrInterrupted
		}
		return "", err
	}

	m, ok := final.(lineModel)
	if !ok {
		return "", errors.New("unexpected line model")
	}
	switch m.outcome {
	case lineCancelled:
		return "", ErrInterrupted
	case lineEOF:
		return "", io.EOF
	default:
		return m.input.Value(), nil
	}
}

func (r *TUIReader) Close() error { return nil }
