package ui

import (
	"fmt"
	"strings"
)

// renderAlert renders the pending alert over the screen.
func (m Model) renderAlert() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Render(m.alert.message))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter/esc/space to dismiss"))
	return m.centerModal(b.String(), modalWidth(m.width, 60), m.theme.Accent)
}

// renderBusy renders the blocking overlay shown while requests are in
// flight.
func (m Model) renderBusy() string {
	styles := m.theme.Styles()
	labels := m.busy.Labels()
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(styles.AccentText.Bold(true).Render(strings.Join(dedupe(labels), ", ") + "..."))
	if n := m.busy.Count(); n > 1 {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render(pluralRequests(n)))
	}
	return m.centerModal(b.String(), modalWidth(m.width, 40), m.theme.Warning)
}

func modalWidth(screen, preferred int) int {
	return max(min(preferred, screen-6), 20)
}

func pluralRequests(n int) string {
	if n == 1 {
		return "1 request pending"
	}
	return fmt.Sprintf("%d requests pending", n)
}

// dedupe drops repeats from a sorted slice.
func dedupe(sorted []string) []string {
	out := make([]string, 0, len(sorted))
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
