package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ragdesk/internal/logtail"
)

type consoleState struct {
	view    viewport.Model
	entries []logtail.Entry
	err     error
}

func newConsoleState() consoleState {
	return consoleState{view: viewport.New(80, 10)}
}

func (m *Model) handleConsole(msg consoleMsg) {
	m.console.err = msg.err
	if msg.err == nil {
		m.console.entries = msg.entries
	}
	follow := m.console.view.AtBottom() || m.console.view.TotalLineCount() == 0
	m.refreshConsoleView()
	if follow {
		m.console.view.GotoBottom()
	}
}

func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PageUp):
		m.console.view.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.console.view.PageDown()
	case key.Matches(msg, m.keys.Up):
		m.console.view.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.console.view.ScrollDown(1)
	}
	return m, nil
}

// refreshConsoleView renders the parsed log lines into the viewport.
func (m *Model) refreshConsoleView() {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	width := max(m.console.view.Width, 20)

	var b strings.Builder
	for _, e := range m.console.entries {
		b.WriteString(m.formatEntry(e, styles, width))
		b.WriteString("\n")
	}
	m.console.view.SetContent(b.String())
}

func (m *Model) formatEntry(e logtail.Entry, styles Styles, width int) string {
	if !e.Structured() {
		return styles.MutedText.Render(truncate(e.Raw, width))
	}
	var parts []string
	if !e.Time.IsZero() {
		parts = append(parts, styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
	}
	parts = append(parts, styles.LevelStyle(e.Level).Render(strings.ToUpper(e.Level)))
	if e.Component != "" {
		parts = append(parts, styles.AccentText.Render("["+e.Component+"]"))
	}
	parts = append(parts, styles.Text.Render(e.Message))
	for _, f := range e.Fields {
		parts = append(parts, styles.MutedText.Render(f.Key+"="+f.Value))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderConsolePane() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	title := "Console › " + truncateMiddle(m.cfg.LogFile, max(m.width-20, 10))

	var content string
	switch {
	case m.console.err != nil:
		content = styles.WarningText.Render("Cannot read log file: " + m.console.err.Error())
	case len(m.console.entries) == 0:
		content = styles.FaintText.Render("No log lines yet")
	default:
		content = m.console.view.View()
	}
	return m.renderTitledBox(title, content, m.width, m.contentHeight(), true)
}
