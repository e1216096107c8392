package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var logoLines = []string{
	"┬─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬┌─",
	"├┬┘├─┤│ ┬ ││├┤ └─┐├┴┐",
	"┴└─┴ ┴└─┘─┴┘└─┘└─┘┴ ┴",
}

// renderHome renders the welcome pane.
func (m Model) renderHome() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Bold(true).Background(lipgloss.Color(m.theme.SurfaceAlt))

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range logoLines {
		b.WriteString("  " + accent.Render(line) + "\n")
	}
	b.WriteString("\n")
	b.WriteString("  " + styles.Text.Render("Ingest documents into collections, chat against them and curate the stored chunks.") + "\n\n")

	snap := m.snapshot
	health := m.theme.HealthStyle(snap.Healthy(), snap.Probed()).Background(lipgloss.Color(m.theme.SurfaceAlt))
	b.WriteString("  " + styles.MutedText.Render("Backend   ") + styles.Text.Render(m.cfg.APIURL) + "\n")
	b.WriteString("  " + styles.MutedText.Render("Database  ") + health.Render(snap.Label()) + "\n")
	if snap.LastError != nil {
		b.WriteString("  " + styles.MutedText.Render("Last error ") + styles.DangerText.Render(truncate(snap.LastError.Error(), m.width-16)) + "\n")
	}
	b.WriteString("  " + styles.MutedText.Render("Collections ") + styles.Text.Render(strconv.Itoa(len(m.selectors.Ingest.Options()))) + "\n\n")

	b.WriteString("  " + styles.AccentText.Bold(true).Render("Quick start") + "\n")
	steps := []string{
		"Upload › Collections: create a collection",
		"Upload › File: stage a text or PDF file and ingest it",
		"Chat: ask questions against a collection",
		"Explore: load a collection to search, edit or delete chunks",
		"Console: follow the client log",
	}
	for i, step := range steps {
		b.WriteString("  " + styles.FaintText.Render(strconv.Itoa(i+1)+".") + " " + styles.Text.Render(step) + "\n")
	}

	return m.renderTitledBox("Home", b.String(), m.width, m.contentHeight(), false)
}
