// Package tui is the interactive calculator. Every successful evaluation
// becomes the ans register, which % and x consume, and evaluation errors are
// shown with the offending run highlighted inside the normalized expression.
package tui

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gnomonic/reckon"
)

// Config seeds the calculator session.
type Config struct {
	Degrees bool
	Current float64 // NaN starts with an empty ans register
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{Degrees: true, Current: math.NaN()}
}

// entry is one line of scrollback: an evaluated input, or a session note.
type entry struct {
	input  string
	norm   string
	result string
	err    error
	note   string
}

// Model is the bubbletea model for the calculator.
type Model struct {
	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model

	entries []entry

	// Input history
	history []string
	histIdx int    // -1 = not navigating
	draft   string // input stashed while navigating

	degrees bool
	current float64 // ans register, NaN when empty
}

// New creates a calculator model.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "expression, e.g. (2 + 3) ^ 2 or 50%"
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.PlaceholderStyle = placeholderStyle
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		input:   ti,
		histIdx: -1,
		degrees: cfg.Degrees,
		current: cfg.Current,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 6 // input panel + help bar
		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - 8
		m.refreshEntries()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlL:
		// All clear: scrollback and the ans register.
		m.entries = nil
		m.current = math.NaN()
		m.refreshEntries()
		return m, nil

	case tea.KeyF2:
		m.toggleMode()
		return m, nil

	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		if input == "" {
			return m, nil
		}
		if len(m.history) == 0 || m.history[len(m.history)-1] != input {
			m.history = append(m.history, input)
		}
		m.histIdx = -1
		m.draft = ""
		m.input.Reset()
		m.submit(input)
		m.refreshEntries()
		return m, nil

	case tea.KeyUp:
		if len(m.history) > 0 {
			if m.histIdx == -1 {
				m.draft = m.input.Value()
				m.histIdx = len(m.history) - 1
			} else if m.histIdx > 0 {
				m.histIdx--
			}
			m.input.SetValue(m.history[m.histIdx])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.histIdx != -1 {
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
			} else {
				m.histIdx = -1
				m.input.SetValue(m.draft)
			}
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

	if msg.String() == "ctrl+g" {
		m.toggleMode()
		return m, nil
	}

	// Pass other keys to the input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates input against the session state. A success becomes the
// new ans value; NaN clears it, matching Current's NaN-means-absent rule.
func (m *Model) submit(input string) {
	opts := make([]reckon.Option, 0, 2)
	if !m.degrees {
		opts = append(opts, reckon.Radians())
	}
	if !math.IsNaN(m.current) {
		opts = append(opts, reckon.Current(m.current))
	}

	v, err := reckon.Eval(input, opts...)
	e := entry{input: input, norm: reckon.Normalize(input), err: err}
	if err == nil {
		m.current = v
		e.result = formatValue(v)
	}
	m.entries = append(m.entries, e)
}

func (m *Model) toggleMode() {
	m.degrees = !m.degrees
	mode := "radians"
	if m.degrees {
		mode = "degrees"
	}
	m.entries = append(m.entries, entry{note: "angle mode: " + mode})
	m.refreshEntries()
}

// refreshEntries rebuilds the scrollback content.
func (m *Model) refreshEntries() {
	var b strings.Builder
	for _, e := range m.entries {
		if e.note != "" {
			b.WriteString(noteStyle.Render(e.note))
			b.WriteString("\n")
			continue
		}

		b.WriteString(promptStyle.Render("> ") + e.input)
		b.WriteString("\n")

		if e.err != nil {
			var spanErr reckon.SpanError
			if errors.As(e.err, &spanErr) {
				if pos, length := spanErr.Span(); pos >= 0 {
					b.WriteString("  " + highlightSpan(e.norm, pos, length))
					b.WriteString("\n")
				}
			}
			b.WriteString(errorStyle.Render("  " + e.err.Error()))
			b.WriteString("\n")
		} else {
			b.WriteString(resultStyle.Render("= " + e.result))
			b.WriteString("\n")
		}
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// highlightSpan renders expr with the [pos, pos+length) run marked. Out of
// range spans render expr unchanged.
func highlightSpan(expr string, pos, length int) string {
	if pos < 0 || pos >= len(expr) {
		return expr
	}
	end := pos + length
	if end > len(expr) {
		end = len(expr)
	}
	return expr[:pos] + spanStyle.Render(expr[pos:end]) + expr[end:]
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "starting reckon..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(panelStyle.Width(m.width - 2).Height(m.viewport.Height + 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(inputStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	mode := "RAD"
	if m.degrees {
		mode = "DEG"
	}
	ans := "ans: none"
	if !math.IsNaN(m.current) {
		ans = "ans: " + formatValue(m.current)
	}

	left := titleStyle.Render("reckon")
	right := badgeStyle.Render(mode) + " " + badgeStyle.Render(ans)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderHelp() string {
	items := []string{
		keyHint("enter", "evaluate"),
		keyHint("↑/↓", "history"),
		keyHint("f2", "deg/rad"),
		keyHint("ctrl+l", "clear"),
		keyHint("esc", "quit"),
	}
	return helpStyle.Render(strings.Join(items, "  "))
}

// Run starts the calculator TUI.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
