// ============================================================================
// Fragment - Language Front End
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model for the interactive parser
// Author:      msto63
// Created:     2026-10-11
// License:     MIT
// ============================================================================

package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/msto63/fragment/foundation/core/error"
	"github.com/msto63/fragment/foundation/fragment"
	mdwast "github.com/msto63/fragment/foundation/fragment/ast"
	"github.com/msto63/fragment/pkg/core/version"
)

// SourceName names every submitted line; each line is its own unit
const SourceName = "<repl>.fr"

// Config holds TUI configuration
type Config struct {
	Engine *fragment.Engine
	Prompt string

	// Render defaults to the node's tree rendering
	Render func(mdwast.Node) string

	// OnEntry is called for every parsed line
	OnEntry func(Entry)
}

// Model is the main Bubbletea model for the parser REPL
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Transcript
	entries []Entry
	errors  int

	// Input recall, oldest first; recall == len(history) means a fresh line
	history []string
	recall  int

	engine  *fragment.Engine
	render  func(mdwast.Node) string
	onEntry func(Entry)
}

// New creates a new REPL model
func New(cfg Config) Model {
	if cfg.Engine == nil {
		cfg.Engine = fragment.New(fragment.Options{})
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "ready> "
	}
	if cfg.Render == nil {
		cfg.Render = func(n mdwast.Node) string { return n.String() }
	}

	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.Placeholder = "def f(x) x * 2"
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	ti.Focus()

	return Model{
		input:   ti,
		engine:  cfg.Engine,
		render:  cfg.Render,
		onEntry: cfg.OnEntry,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Entries returns the transcript
func (m Model) Entries() []Entry {
	return m.entries
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel
		footerHeight := 4 // Input, status bar, help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - len(m.input.Prompt) - 2
		m.updateViewportContent()

	case parsedMsg:
		m.entries = append(m.entries, msg.entry)
		if msg.entry.Err != nil {
			m.errors++
		}
		if m.onEntry != nil {
			m.onEntry(msg.entry)
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.entries = nil
		m.errors = 0
		m.updateViewportContent()
		return m, nil

	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		m.history = append(m.history, line)
		m.recall = len(m.history)
		return m, m.parseLine(line)

	case tea.KeyUp:
		if m.recall > 0 {
			m.recall--
			m.input.SetValue(m.history[m.recall])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.recall < len(m.history) {
			m.recall++
		}
		if m.recall == len(m.history) {
			m.input.Reset()
		} else {
			m.input.SetValue(m.history[m.recall])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// parseLine parses one submitted line as a standalone unit
func (m Model) parseLine(line string) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		unit, err := engine.ParseString(SourceName, line)
		return parsedMsg{entry: Entry{Input: line, Unit: unit, Err: err}}
	}
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

func (m Model) renderTranscript() string {
	if len(m.entries) == 0 {
		return HelpDescStyle.Render("Enter a definition, an extern or an expression.")
	}

	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(InputEchoStyle.Render(m.input.Prompt + e.Input))
		b.WriteString("\n")

		if e.Unit != nil {
			for _, n := range e.Unit.Nodes {
				b.WriteString(TreeStyle.Render(m.render(n)))
				b.WriteString("\n")
			}
		}
		if e.Err != nil {
			b.WriteString(DiagnosticStyle.Render(mdwerror.Diagnostic(e.Err)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(TranscriptPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo and version
func (m Model) renderHeader() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		strings.Repeat(" ", 3),
		SubHeaderStyle.Render("v"+version.Tool),
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderStatusBar renders parse counts
func (m Model) renderStatusBar() string {
	ok := StatusOKStyle.Render(fmt.Sprintf("%d parsed", len(m.entries)-m.errors))
	failed := HelpDescStyle.Render("0 failed")
	if m.errors > 0 {
		failed = StatusErrorStyle.Render(fmt.Sprintf("%d failed", m.errors))
	}
	return StatusBarStyle.Width(m.width).Render(ok + "  " + failed)
}

// renderHelpBar renders keyboard hints
func (m Model) renderHelpBar() string {
	hints := []string{
		RenderKeyHint("enter", "parse"),
		RenderKeyHint("↑/↓", "recall"),
		RenderKeyHint("ctrl+l", "clear"),
		RenderKeyHint("esc", "quit"),
	}
	return strings.Join(hints, "  ")
}

// Run starts the TUI program
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
