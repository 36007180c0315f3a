// Package ui renders the interactive playground terminal. It is a thin
// bubbletea shell around an Evaluator; all command semantics live
// behind that interface.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Evaluator executes one command line and returns its output.
type Evaluator interface {
	Eval(line string) (string, error)
}

// ClearScreen is the sentinel output that resets the scrollback instead
// of being printed.
const ClearScreen = "\x1b[2J\x1b[H"

const maxScrollback = 500

// Options configure the terminal.
type Options struct {
	Evaluator Evaluator
	Prompt    string
	Colors    bool
	Banner    string
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

type model struct {
	opts    Options
	input   textinput.Model
	lines   []string
	history []string
	histPos int
	pending string
	width   int
	height  int
}

// Run starts the terminal and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(initialModel(opts))
	_, err := p.Run()
	return err
}

func initialModel(opts Options) model {
	if opts.Prompt == "" {
		opts.Prompt = "$ "
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Focus()

	var lines []string
	if opts.Banner != "" {
		lines = strings.Split(strings.TrimRight(opts.Banner, "\n"), "\n")
	}
	return model{opts: opts, input: ti, lines: lines}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-len(m.opts.Prompt)-1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit
		case "ctrl+l":
			m.lines = nil
			return m, nil
		case "up":
			m.recallHistory(-1)
			return m, nil
		case "down":
			m.recallHistory(1)
			return m, nil
		case "enter":
			m.submit()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	for _, ln := range m.visibleLines() {
		b.WriteString(ln)
		b.WriteString("\n")
	}
	b.WriteString(m.styledPrompt())
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.style(faintStyle, "ctrl+l clear  •  ctrl+c quit  •  help for commands"))
	return b.String()
}

// submit executes the current input line and appends the echoed command
// plus its output to the scrollback.
func (m *model) submit() {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.pending = ""
	if line == "" {
		return
	}
	m.history = append(m.history, line)
	m.histPos = len(m.history)

	m.appendLine(m.styledPrompt() + line)

	out, err := m.opts.Evaluator.Eval(line)
	if err != nil {
		m.appendOutput(m.style(errorStyle, "Error: "+err.Error()))
		return
	}
	if out == ClearScreen {
		m.lines = nil
		return
	}
	m.appendOutput(out)
}

func (m *model) appendOutput(out string) {
	if strings.TrimSpace(out) == "" {
		return
	}
	for _, ln := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		m.appendLine(ln)
	}
}

func (m *model) appendLine(ln string) {
	m.lines = append(m.lines, ln)
	if len(m.lines) > maxScrollback {
		m.lines = m.lines[len(m.lines)-maxScrollback:]
	}
}

// recallHistory moves through previously entered commands. Moving past
// the newest entry restores whatever was typed before recalling.
func (m *model) recallHistory(delta int) {
	if len(m.history) == 0 {
		return
	}
	if m.histPos == len(m.history) && delta < 0 {
		m.pending = m.input.Value()
	}
	pos := m.histPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.history) {
		m.histPos = len(m.history)
		m.input.SetValue(m.pending)
		m.input.CursorEnd()
		return
	}
	m.histPos = pos
	m.input.SetValue(m.history[pos])
	m.input.CursorEnd()
}

// visibleLines trims the scrollback to the terminal height, leaving
// room for the prompt and the footer.
func (m model) visibleLines() []string {
	if m.height <= 0 || len(m.lines) <= m.height-3 {
		return m.lines
	}
	return m.lines[len(m.lines)-(m.height-3):]
}

func (m model) styledPrompt() string {
	return m.style(promptStyle, m.opts.Prompt)
}

func (m model) style(s lipgloss.Style, text string) string {
	if !m.opts.Colors {
		return text
	}
	return s.Render(text)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
