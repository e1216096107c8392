package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/chat"
	"github.com/five82/ragdesk/internal/config"
	"github.com/five82/ragdesk/internal/numfield"
)

// Chat input focus.
const (
	fieldMessage = iota
	fieldChunkCount
)

// chatFormRows is the height taken by the selector and inputs.
const chatFormRows = 7

type chatState struct {
	message    textinput.Model
	chunkCount textinput.Model
	focus      int

	transcript chat.Transcript
	session    chat.SessionView
	view       viewport.Model

	// Rendered markdown of AI replies by turn index, and the renderer that
	// produced them. Both are dropped on resize and theme change.
	rendered map[int]string
	renderer *glamour.TermRenderer
}

func newChatState(cfg config.Config) chatState {
	msg := textinput.New()
	msg.Prompt = ""
	msg.Placeholder = "Ask something about the collection"

	count := textinput.New()
	count.Prompt = ""
	count.CharLimit = 6
	count.Width = 8
	count.SetValue(cfg.DefaultChunkCount())

	return chatState{
		message:    msg,
		chunkCount: count,
		view:       viewport.New(80, 10),
		rendered:   make(map[int]string),
	}
}

// updateInputs forwards msg to the focused chat input. The chunk count
// accepts an optional sign; blank and "-" stay until commitChunkCount.
func (c *chatState) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if c.focus == fieldMessage {
		c.message, cmd = c.message.Update(msg)
		return cmd
	}
	c.chunkCount, cmd = c.chunkCount.Update(msg)
	if clean := numfield.Signed.Typing(c.chunkCount.Value()); clean != c.chunkCount.Value() {
		c.chunkCount.SetValue(clean)
	}
	return cmd
}

// commitChunkCount settles the chunk count, turning blank or "-" into 0.
func (c *chatState) commitChunkCount() {
	if clean := numfield.Signed.Sanitize(c.chunkCount.Value()); clean != c.chunkCount.Value() {
		c.chunkCount.SetValue(clean)
	}
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.chat.commitChunkCount()
		count, _ := numfield.Signed.Int(m.chat.chunkCount.Value())
		tok := m.busy.Begin("Thinking")
		return m, sendChatCmd(m.ctx, m.chatter, m.gen, tok, m.chat.message.Value(), m.selectors.Chat.Value(), count)

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		m.chat.focus = 1 - m.chat.focus
		cmd := m.syncFocus()
		return m, cmd

	case key.Matches(msg, m.keys.NextCollection):
		m.selectors.Chat.Next()
		return m, nil

	case key.Matches(msg, m.keys.PrevCollection):
		m.selectors.Chat.Prev()
		return m, nil

	case key.Matches(msg, m.keys.ToggleChunks):
		m.chat.transcript.ToggleSelected()
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.PrevTurn):
		m.chat.transcript.SelectPrev()
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.NextTurn):
		m.chat.transcript.SelectNext()
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSession):
		if m.chat.session.Visible() {
			m.chat.session.Hide()
			m.refreshTranscript()
			return m, nil
		}
		return m, fetchSessionCmd(m.ctx, m.chatter, m.gen)

	case key.Matches(msg, m.keys.Clear):
		return m, clearSessionCmd(m.ctx, m.chatter, m.gen)

	case key.Matches(msg, m.keys.PageUp):
		m.chat.view.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.chat.view.PageDown()
		return m, nil
	}

	cmd := m.chat.updateInputs(msg)
	return m, cmd
}

func (m Model) handleChatReply(msg chatReplyMsg) (tea.Model, tea.Cmd) {
	m.busy.End(msg.tok)
	if msg.turn != nil {
		m.chat.transcript.Append(*msg.turn)
		m.chat.message.SetValue("")
		m.refreshTranscript()
		m.chat.view.GotoBottom()
	}
	return m.notify(msg.res, false)
}

// invalidateTranscript drops cached markdown and the renderer, then
// re-renders.
func (m *Model) invalidateTranscript() {
	m.chat.rendered = make(map[int]string)
	m.chat.renderer = nil
	m.refreshTranscript()
}

// refreshTranscript rebuilds the transcript viewport content.
func (m *Model) refreshTranscript() {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	turns := m.chat.transcript.Turns()
	selected := m.chat.transcript.Selected()
	width := max(m.chat.view.Width-2, 20)

	var b strings.Builder
	if len(turns) == 0 {
		b.WriteString(styles.FaintText.Render("No messages yet. Pick a collection, type a question and press enter."))
		b.WriteString("\n")
	}
	for i, turn := range turns {
		marker := "  "
		if i == selected {
			marker = styles.AccentText.Render("▸ ")
		}
		b.WriteString(marker + styles.InfoText.Bold(true).Render("You") + "\n")
		b.WriteString(styles.Text.Width(width).Render(turn.Human) + "\n")
		b.WriteString("  " + styles.SuccessText.Render("Assistant") + "\n")
		b.WriteString(m.renderReply(i, turn.AI, width))
		b.WriteString("\n")
		b.WriteString("  " + styles.MutedText.Render(turn.ChunksUsedLabel()))
		if i == selected {
			b.WriteString(styles.FaintText.Render("  [ctrl+k " + turn.ToggleLabel() + "]"))
		}
		b.WriteString("\n")
		if turn.ShowChunks {
			b.WriteString(styles.FaintText.Render(turn.ChunkTrace()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.chat.session.Visible() {
		b.WriteString(styles.AccentText.Bold(true).Render("Session"))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(m.chat.session.Content()))
		b.WriteString("\n")
	}

	m.chat.view.SetContent(b.String())
}

// renderReply renders an AI reply as markdown, falling back to plain text.
func (m *Model) renderReply(i int, text string, width int) string {
	if out, ok := m.chat.rendered[i]; ok {
		return out
	}
	out := text
	if r := m.markdownRenderer(width); r != nil {
		if md, err := r.Render(text); err == nil {
			out = strings.TrimRight(md, "\n")
		} else {
			m.log.Debug("render reply", zap.Error(err))
		}
	}
	m.chat.rendered[i] = out
	return out
}

// markdownRenderer returns the glamour renderer for the current theme,
// building it on first use after an invalidation.
func (m *Model) markdownRenderer(width int) *glamour.TermRenderer {
	if m.chat.renderer != nil {
		return m.chat.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.Markdown),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.log.Debug("markdown renderer", zap.String("style", m.theme.Markdown), zap.Error(err))
		return nil
	}
	m.chat.renderer = r
	return r
}

func (m Model) renderChat() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	var b strings.Builder

	b.WriteString(m.selectorLine("Collection", m.selectors.Chat, styles))
	b.WriteString("\n")
	b.WriteString(m.fieldLine("Message", m.chat.message.View(), m.chat.focus == fieldMessage, styles))
	b.WriteString("\n")
	b.WriteString(m.fieldLine("Chunks", m.chat.chunkCount.View(), m.chat.focus == fieldChunkCount, styles))
	b.WriteString(styles.FaintText.Render("  " + m.chat.session.Label() + " ctrl+e, Clear Session ctrl+x"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(m.chat.view.Width, 1))))
	b.WriteString("\n")
	b.WriteString(m.chat.view.View())

	return m.renderTitledBox("Chat", b.String(), m.width, m.contentHeight(), true)
}
