package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ragdesk/internal/nav"
)

const appName = "ragdesk"

// renderHeader renders the status bar with database health and the backend
// address.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	snap := m.snapshot
	parts := []string{bg.Render(appName, styles.Logo)}

	health := m.theme.HealthStyle(snap.Healthy(), snap.Probed()).Background(lipgloss.Color(m.theme.Surface))
	parts = append(parts,
		bg.Render("DB:", styles.MutedText)+bg.Spaces(1)+bg.Render(snap.Label(), health),
	)

	if m.cfg.APIURL != "" {
		limit := 40
		if compact {
			limit = 24
		}
		parts = append(parts,
			bg.Render("API:", styles.MutedText)+bg.Spaces(1)+
				bg.Render(truncateMiddle(m.cfg.APIURL, limit), styles.Text),
		)
	}

	if snap.ConsecutiveFailures > 0 && !compact {
		parts = append(parts, bg.Render(fmt.Sprintf("retry #%d", snap.ConsecutiveFailures), styles.WarningText))
	}

	if !snap.LastUpdated.IsZero() && !compact {
		parts = append(parts,
			bg.Render("Updated", styles.FaintText)+bg.Spaces(1)+
				bg.Render(snap.LastUpdated.Format("15:04:05"), styles.MutedText),
		)
	}

	if !compact {
		parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderTabBar renders the top-level tabs and, on Upload, its sub-tabs.
func (m Model) renderTabBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(true)

	var parts []string
	for i, pane := range m.tabs.Panes() {
		label := fmt.Sprintf(" %d %s ", i+1, pane)
		if m.tabs.IsActive(pane) {
			parts = append(parts, active.Render(label))
			continue
		}
		parts = append(parts, bg.Render(strings.TrimSpace(label), styles.MutedText))
	}
	line := bg.Join(parts, "  ")

	if m.tabs.IsActive(nav.Upload) {
		var subs []string
		for _, pane := range m.uploadTabs.Panes() {
			if m.uploadTabs.IsActive(pane) {
				subs = append(subs, bg.Render(string(pane), styles.AccentText.Bold(true)))
				continue
			}
			subs = append(subs, bg.Render(string(pane), styles.FaintText))
		}
		line += bg.Spaces(4) + bg.Render("│", styles.FaintText) + bg.Spaces(2) + bg.Join(subs, " / ")
	}

	return bg.FillLine(line, m.width)
}

// renderCommandBar lists the keys that apply to the visible pane.
func (m Model) renderCommandBar() string {
	h := m.help
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	h.Width = m.width - 2
	return m.theme.Styles().Footer.Width(m.width).Render(h.ShortHelpView(m.paneBindings()))
}

// paneBindings returns the short help for the visible pane.
func (m Model) paneBindings() []key.Binding {
	k := m.keys
	switch m.tabs.Active() {
	case nav.Upload:
		if m.uploadTabs.IsActive(nav.UploadCollections) {
			return []key.Binding{k.Confirm, k.Clear, k.DeleteCollection, k.NextCollection, k.SubTab, k.Help}
		}
		if m.upload.pipeline.ResetVisible() {
			return []key.Binding{k.Ingest, k.Clear, k.NextCollection, k.PageDown, k.SubTab, k.Help}
		}
		return []key.Binding{k.Confirm, k.Down, k.NextCollection, k.SubTab, k.Help}
	case nav.Chat:
		return []key.Binding{k.Confirm, k.NextCollection, k.ToggleChunks, k.PrevTurn, k.ToggleSession, k.Clear, k.Help}
	case nav.Explore:
		if m.explore.searching {
			return []key.Binding{k.Confirm, k.Cancel}
		}
		return []key.Binding{k.Load, k.Search, k.SortSource, k.SortText, k.NextPage, k.Confirm, k.NextCollection, k.Help}
	case nav.Console:
		return []key.Binding{k.PageUp, k.PageDown, k.Help, k.Quit}
	}
	return []key.Binding{k.NextTab, k.JumpTab, k.CycleTheme, k.Reload, k.Help, k.Quit}
}
