package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width threshold below which the header drops optional parts.
const LayoutCompactWidth = 100

// Timing constants.
const (
	// CollectionRefreshDelay debounces the selector refresh after a tab
	// switch.
	CollectionRefreshDelay = 100 * time.Millisecond

	// UITick is how often the header snapshot and console are refreshed.
	UITick = time.Second
)

// ConsoleTailLines bounds how much of the log file the console shows.
const ConsoleTailLines = 500

// chromeHeight is the rows taken by header, tab bar and command bar.
const chromeHeight = 3

// contentHeight is the height available to a pane box.
func (m Model) contentHeight() int {
	return max(6, m.height-chromeHeight)
}

// renderTitledBox draws content in a box with the title set into the top
// border. Content lines beyond the box height are cut.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	bgColor := m.theme.SurfaceAlt
	if focused {
		borderColor = m.theme.BorderFocus
		bgColor = m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	inner := max(width-2, 4)
	title = truncate(title, inner-4)
	left := (inner - lipgloss.Width(title) - 2) / 2
	right := inner - lipgloss.Width(title) - 2 - left

	var b strings.Builder
	b.WriteString(bg.Render("┌"+strings.Repeat("─", left), border))
	b.WriteString(bg.Render(" "+title+" ", titleStyle))
	b.WriteString(bg.Render(strings.Repeat("─", right)+"┐", border))
	b.WriteString("\n")

	body := lipgloss.NewStyle().Width(inner).MaxWidth(inner).Background(lipgloss.Color(bgColor))
	lines := strings.Split(content, "\n")
	for i := range max(height-2, 1) {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		b.WriteString(bg.Render("│", border))
		b.WriteString(body.Render(line))
		b.WriteString(bg.Render("│", border))
		b.WriteString("\n")
	}
	b.WriteString(bg.Render("└"+strings.Repeat("─", inner)+"┘", border))
	return b.String()
}

// centerModal places a bordered dialog in the middle of the screen.
func (m Model) centerModal(content string, width int, accent string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accent)).
		Padding(1, 2).
		Width(width).
		Render(content)
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
