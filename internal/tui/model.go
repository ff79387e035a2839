// Package tui plays a quiz session in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/remaimber-it/imagequiz/internal/asset"
	"github.com/remaimber-it/imagequiz/internal/service"
)

// Session is the part of the quiz controller the player drives.
type Session interface {
	Start(ctx context.Context) error
	Reveal(ctx context.Context) error
	Advance(ctx context.Context) error
}

// Model is the bubbletea model of the terminal player. Controller calls run
// as commands; their renderer output comes back as messages.
type Model struct {
	ctx     context.Context
	session Session
	styles  *Styles
	resolve func(string) string

	loading       bool
	errText       string
	showingAnswer bool
	url           string
	label         string
	progress      string
	advanceLabel  string
	advanceStyle  service.AdvanceStyle
	revealLabel   string
	revealEnabled bool

	width    int
	finished bool
	quitting bool
	fatal    error
}

// NewModel creates a player for session. labels supplies the reveal label
// shown before the controller first sets it. resolve turns the relative
// asset URLs the controller emits into something the user can open; nil
// leaves them as they are.
func NewModel(ctx context.Context, session Session, labels service.Labels, resolve func(string) string) Model {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	return Model{
		ctx:     ctx,
		session: session,
		styles:  DefaultStyles(),
		resolve: resolve,

		loading:     true,
		revealLabel: labels.Reveal,
		width:       80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.run("start", m.session.Start)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case loadingMsg:
		m.loading = msg.visible
	case errorMsg:
		m.errText = ""
		if msg.visible {
			m.errText = msg.message
		}
	case displayMsg:
		m.showingAnswer = msg.answer
		m.url = m.resolve(msg.url)
		m.label = msg.label
	case progressMsg:
		m.progress = service.ProgressText(msg.current, msg.total)
	case advanceControlMsg:
		m.advanceLabel = msg.label
		m.advanceStyle = msg.style
	case revealEnabledMsg:
		m.revealEnabled = msg.enabled
	case revealLabelMsg:
		m.revealLabel = msg.label

	case leaveMsg:
		m.finished = true
		return m, tea.Quit

	case actionDoneMsg:
		// Load failures are already on screen. Anything else ends the player.
		var loadErr *asset.LoadError
		if msg.err != nil && !errors.As(msg.err, &loadErr) {
			m.fatal = fmt.Errorf("%s: %w", msg.action, msg.err)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case " ", "a":
		if m.revealEnabled {
			return m, m.run("reveal", m.session.Reveal)
		}
	case "n", "enter":
		return m, m.run("advance", m.session.Advance)
	}
	return m, nil
}

func (m Model) run(action string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

// Finished reports whether the user walked past the last question.
func (m Model) Finished() bool { return m.finished }

// Err returns the error that stopped the player, if any.
func (m Model) Err() error { return m.fatal }

func (m Model) View() string {
	s := m.styles

	if m.fatal != nil {
		return s.Error.Render(m.fatal.Error()) + "\n"
	}
	if m.finished {
		return s.Title.Render("Session complete.") + "\n"
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := s.Title.Render("Image Quiz")
	if m.progress != "" {
		gap := max(1, m.width-8-lipgloss.Width(header)-lipgloss.Width(m.progress))
		header += strings.Repeat(" ", gap) + s.Progress.Render(m.progress)
	}
	b.WriteString(header + "\n\n")

	switch {
	case m.url == "" && m.loading:
		b.WriteString(s.Muted.Render("Loading...") + "\n")
	case m.url != "":
		b.WriteString(s.Label.Render(m.label) + "\n")
		b.WriteString(s.URL.Render(m.url) + "\n")
		if m.loading {
			b.WriteString(s.Muted.Render("Loading...") + "\n")
		}
	}

	if m.errText != "" {
		b.WriteString("\n" + s.Error.Render(m.errText) + "\n")
	}

	b.WriteString("\n" + m.controls() + "\n")
	b.WriteString(s.Muted.Render("space/a reveal  •  n/enter advance  •  q quit"))

	return s.Frame.Width(max(20, m.width-2)).Render(b.String()) + "\n"
}

func (m Model) controls() string {
	s := m.styles

	reveal := s.Disabled.Render(m.revealLabel)
	if m.revealEnabled && !m.showingAnswer {
		reveal = s.Primary.Render(m.revealLabel)
	}

	advance := s.Primary.Render(m.advanceLabel)
	if m.advanceStyle == service.AdvanceTerminal {
		advance = s.Terminal.Render(m.advanceLabel)
	}
	if m.advanceLabel == "" {
		advance = ""
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, reveal, "  ", advance)
}
