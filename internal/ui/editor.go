package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ragdesk/internal/explore"
)

// Editor focus ring: the text area, then the buttons.
const (
	focusText = iota
	focusSave
	focusDelete
	focusCancel
	focusCount
)

var editorButtons = []string{"Save", "Delete", "Cancel"}

// editorModal is the chunk edit form. state keeps the source and original
// text the chunk is addressed by.
type editorModal struct {
	state explore.Editor
	text  textarea.Model
	focus int
}

func newEditorModal(state explore.Editor, width, height int) editorModal {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(modalWidth(width, 100) - 6)
	ta.SetHeight(max(min(height-14, 16), 3))
	ta.SetValue(state.Text)
	return editorModal{state: state, text: ta}
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.explore.editor
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.saveChunk()
	case key.Matches(msg, m.keys.DeleteChunk):
		return m.deleteChunk()
	case key.Matches(msg, m.keys.Cancel):
		m.explore.editor = nil
		return m, nil
	case key.Matches(msg, m.keys.FocusNext):
		ed.focus = (ed.focus + 1) % focusCount
		if ed.focus == focusText {
			return m, ed.text.Focus()
		}
		ed.text.Blur()
		return m, nil
	}

	if ed.focus != focusText {
		if key.Matches(msg, m.keys.Confirm) {
			switch ed.focus {
			case focusSave:
				return m.saveChunk()
			case focusDelete:
				return m.deleteChunk()
			case focusCancel:
				m.explore.editor = nil
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	ed.text, cmd = ed.text.Update(msg)
	return m, cmd
}

func (m Model) saveChunk() (tea.Model, tea.Cmd) {
	ed := m.explore.editor
	ed.state.Text = ed.text.Value()
	tok := m.busy.Begin("Saving chunk")
	return m, saveChunkCmd(m.ctx, m.explorer, m.gen, tok, m.explore.collection, ed.state)
}

func (m Model) deleteChunk() (tea.Model, tea.Cmd) {
	tok := m.busy.Begin("Deleting chunk")
	return m, deleteChunkCmd(m.ctx, m.explorer, m.gen, tok, m.explore.collection, m.explore.editor.state)
}

// handleChunkOp closes the editor on success and reloads the client once
// the alert is dismissed. On failure the editor stays open under the alert.
func (m Model) handleChunkOp(msg chunkOpMsg) (tea.Model, tea.Cmd) {
	m.busy.End(msg.tok)
	if !msg.res.OK {
		return m.notify(msg.res, false)
	}
	m.explore.editor = nil
	return m.notify(msg.res, true)
}

func (m Model) renderEditor() string {
	styles := m.theme.Styles()
	ed := m.explore.editor
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Edit chunk"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Collection ") + styles.Text.Render(m.explore.collection))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Source     ") + styles.Text.Render(ed.state.Source))
	b.WriteString("\n\n")
	b.WriteString(ed.text.View())
	b.WriteString("\n\n")

	buttons := make([]string, 0, len(editorButtons))
	for i, label := range editorButtons {
		style := lipgloss.NewStyle().Padding(0, 2).
			Foreground(lipgloss.Color(m.theme.Text)).
			Background(lipgloss.Color(m.theme.SurfaceAlt))
		if ed.focus == i+1 {
			style = style.
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Bold(true)
		}
		buttons = append(buttons, style.Render(label))
	}
	b.WriteString(strings.Join(buttons, "  "))
	b.WriteString("\n\n")

	hint := "tab focus, ctrl+s save, ctrl+d delete, esc cancel"
	draft := ed.state
	draft.Text = ed.text.Value()
	if draft.Dirty() {
		hint = fmt.Sprintf("modified, %s", hint)
	}
	b.WriteString(styles.FaintText.Render(hint))

	return m.centerModal(b.String(), modalWidth(m.width, 100), m.theme.BorderFocus)
}
