package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/config"
	"github.com/five82/ragdesk/internal/ingest"
	"github.com/five82/ragdesk/internal/nav"
	"github.com/five82/ragdesk/internal/numfield"
	"github.com/five82/ragdesk/internal/registry"
)

// Upload/File input focus.
const (
	fieldPath = iota
	fieldChunkSize
)

// uploadFormRows is the height of the File form above the staged text.
const uploadFormRows = 9

// uploadState holds both Upload sub-tabs.
type uploadState struct {
	pipeline  ingest.Pipeline
	path      textinput.Model
	chunkSize textinput.Model
	focus     int
	staged    viewport.Model

	// newName is the Collections sub-tab form.
	newName textinput.Model

	watchCancel context.CancelFunc
}

func newUploadState(cfg config.Config) uploadState {
	path := textinput.New()
	path.Prompt = ""
	path.Placeholder = "~/documents/report.pdf"

	size := textinput.New()
	size.Prompt = ""
	size.CharLimit = 9
	size.SetValue(cfg.DefaultChunkSize())

	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "new collection name"

	return uploadState{
		path:      path,
		chunkSize: size,
		newName:   name,
		staged:    viewport.New(80, 10),
	}
}

// updateInputs forwards msg to the focused File input, keeping the chunk
// size digits-only.
func (u *uploadState) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if u.focus == fieldPath && u.pipeline.ChooserVisible() {
		u.path, cmd = u.path.Update(msg)
		return cmd
	}
	u.chunkSize, cmd = u.chunkSize.Update(msg)
	if clean := numfield.Digits.Sanitize(u.chunkSize.Value()); clean != u.chunkSize.Value() {
		u.chunkSize.SetValue(clean)
	}
	return cmd
}

// stopWatch ends the staged-file watch, if any.
func (m *Model) stopWatch() {
	if m.upload.watchCancel != nil {
		m.upload.watchCancel()
		m.upload.watchCancel = nil
	}
}

// startWatch reports edits to the staged file so stale text can be flagged.
func (m *Model) startWatch(path string) tea.Cmd {
	m.stopWatch()
	ctx, cancel := context.WithCancel(m.ctx)
	changes, err := ingest.Watch(ctx, path, m.log)
	if err != nil {
		cancel()
		m.log.Warn("watch staged file", zap.String("path", path), zap.Error(err))
		return nil
	}
	m.upload.watchCancel = cancel
	return waitForChange(m.gen, path, changes)
}

func (m Model) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.upload.pipeline
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if p.ChooserVisible() {
			m.upload.focus = 1 - m.upload.focus
		}
		cmd := m.syncFocus()
		return m, cmd

	case key.Matches(msg, m.keys.NextCollection):
		m.selectors.Ingest.Next()
		return m, nil

	case key.Matches(msg, m.keys.PrevCollection):
		m.selectors.Ingest.Prev()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.upload.staged.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.upload.staged.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if !p.ChooserVisible() {
			return m, nil
		}
		return m.stageFile()

	case key.Matches(msg, m.keys.Clear):
		if !p.ResetVisible() {
			return m, nil
		}
		m.stopWatch()
		p.Reset()
		m.upload.path.SetValue("")
		m.upload.staged.SetContent("")
		m.upload.focus = fieldPath
		cmd := m.syncFocus()
		return m, cmd

	case key.Matches(msg, m.keys.Ingest):
		return m.ingestStaged()
	}

	cmd := m.upload.updateInputs(msg)
	return m, cmd
}

// stageFile starts extraction of the path in the chooser.
func (m Model) stageFile() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.upload.path.Value())
	if raw == "" {
		return m, nil
	}
	path := expandHome(raw)
	if err := m.upload.pipeline.Choose(path); err != nil {
		m.log.Debug("choose file", zap.Error(err))
		return m, nil
	}
	tok := m.busy.Begin("Extracting")
	return m, extractCmd(m.ctx, m.extractor, m.gen, tok, path)
}

func (m Model) handleStaged(msg stagedMsg) (tea.Model, tea.Cmd) {
	m.busy.End(msg.tok)
	if msg.err != nil {
		m.upload.pipeline.ExtractFailed(msg.path)
		return m, nil
	}
	if err := m.upload.pipeline.Stage(msg.file); err != nil {
		m.log.Debug("stage file", zap.Error(err))
		return m, nil
	}
	m.upload.staged.SetContent(msg.file.Text)
	m.upload.staged.GotoTop()
	m.upload.focus = fieldChunkSize
	cmd := tea.Batch(m.syncFocus(), m.startWatch(msg.path))
	return m, cmd
}

// ingestStaged submits the staged text into the selected collection.
func (m Model) ingestStaged() (tea.Model, tea.Cmd) {
	file, err := m.upload.pipeline.BeginSubmit()
	if err != nil {
		return m, nil
	}
	var chunkSize *int
	if n, ok := numfield.Digits.Int(m.upload.chunkSize.Value()); ok {
		chunkSize = &n
	}
	tok := m.busy.Begin("Ingesting")
	return m, ingestCmd(m.ctx, m.submitter, m.gen, tok, file, m.selectors.Ingest.Value(), chunkSize)
}

func (m Model) handleIngested(msg ingestedMsg) (tea.Model, tea.Cmd) {
	m.busy.End(msg.tok)
	if !msg.res.OK {
		m.upload.pipeline.SubmitFailed()
		return m.notify(msg.res, false)
	}
	m.upload.pipeline.SubmitSucceeded()
	m.stopWatch()
	return m.notify(msg.res, true)
}

func (m Model) handleCollectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextCollection):
		m.selectors.Ingest.Next()
		return m, nil

	case key.Matches(msg, m.keys.PrevCollection):
		m.selectors.Ingest.Prev()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		tok := m.busy.Begin("Creating collection")
		return m, createCollectionCmd(m.ctx, m.registry, m.gen, tok, m.upload.newName.Value())

	case key.Matches(msg, m.keys.Clear):
		m.upload.newName.SetValue("")
		return m, nil

	case key.Matches(msg, m.keys.DeleteCollection):
		return m, deleteCollectionCmd(m.ctx, m.registry, m.gen, m.selectors.Ingest.Value())
	}

	var cmd tea.Cmd
	m.upload.newName, cmd = m.upload.newName.Update(msg)
	return m, cmd
}

func (m Model) handleCollectionOp(msg collectionOpMsg) (tea.Model, tea.Cmd) {
	m.busy.End(msg.tok)
	var refresh tea.Cmd
	if msg.res.OK {
		if msg.op == opCreate {
			m.upload.newName.SetValue("")
		}
		refresh = refreshCollectionsCmd(m.ctx, m.registry, m.gen)
	}
	next, cmd := m.notify(msg.res, false)
	return next, tea.Batch(cmd, refresh)
}

// renderUpload renders whichever Upload sub-tab is active.
func (m Model) renderUpload() string {
	if m.uploadTabs.IsActive(nav.UploadCollections) {
		return m.renderCollections()
	}
	return m.renderFile()
}

func (m Model) renderFile() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	p := m.upload.pipeline
	var b strings.Builder

	b.WriteString(m.selectorLine("Target collection", m.selectors.Ingest, styles))
	b.WriteString("\n\n")

	if p.ChooserVisible() {
		b.WriteString(m.fieldLine("File path", m.upload.path.View(), m.upload.focus == fieldPath, styles))
	} else if staged := p.Staged(); staged != nil {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-14s", "  Staged")))
		b.WriteString(styles.Text.Render(truncateMiddle(staged.Name, 40)))
		b.WriteString(styles.FaintText.Render("  " + describeStaged(staged)))
	}
	b.WriteString("\n")
	b.WriteString(m.fieldLine("Chunk size", m.upload.chunkSize.View(), m.upload.focus == fieldChunkSize || !p.ChooserVisible(), styles))
	b.WriteString("\n\n")

	switch {
	case p.Phase() == ingest.FileChosen:
		b.WriteString(styles.InfoText.Render("Reading file..."))
	case p.Stale():
		b.WriteString(styles.WarningText.Render("The file changed on disk since it was staged. ctrl+x and stage it again to pick up the edits."))
	case p.ResetVisible():
		b.WriteString(styles.FaintText.Render("ctrl+g ingest into the target collection, ctrl+x reset"))
	default:
		b.WriteString(styles.FaintText.Render("Enter a path and press enter to stage it"))
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(m.upload.staged.Width, 1))))
	b.WriteString("\n")
	if p.Staged() != nil {
		b.WriteString(m.upload.staged.View())
	}

	return m.renderTitledBox("Upload › File", b.String(), m.width, m.contentHeight(), true)
}

func (m Model) renderCollections() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	var b strings.Builder

	b.WriteString(m.fieldLine("New collection", m.upload.newName.View(), true, styles))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter create, ctrl+x clear"))
	b.WriteString("\n\n")

	names := m.selectors.Ingest.Options()
	selected := m.selectors.Ingest.Value()
	b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("Collections (%d)", len(names))))
	b.WriteString("\n")
	if len(names) == 0 {
		b.WriteString(styles.FaintText.Render("No collections yet"))
	}
	for _, name := range names {
		if name == selected {
			b.WriteString(styles.Selected.Render("▸ " + name))
		} else {
			b.WriteString(styles.Text.Render("  " + name))
		}
		b.WriteString("\n")
	}
	if selected != "" {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("ctrl+n/ctrl+p select, ctrl+d delete " + selected))
	}

	return m.renderTitledBox("Upload › Collections", b.String(), m.width, m.contentHeight(), true)
}

// selectorLine renders a collection selector with its current value.
func (m Model) selectorLine(label string, sel registry.Selector, styles Styles) string {
	value := sel.Value()
	style := styles.Text.Bold(true)
	if value == "" {
		value = "(none)"
		style = styles.FaintText
	}
	count := len(sel.Options())
	return styles.MutedText.Render(fmt.Sprintf("%-18s", label)) +
		style.Render("‹ "+value+" ›") +
		styles.FaintText.Render(fmt.Sprintf("  %d available, ctrl+n/ctrl+p", count))
}

// fieldLine renders a labelled input, marking the focused one.
func (m Model) fieldLine(label, input string, focused bool, styles Styles) string {
	marker := "  "
	if focused {
		marker = styles.AccentText.Render("▸ ")
	}
	return marker + styles.MutedText.Render(fmt.Sprintf("%-12s", label)) + input
}

func describeStaged(f *ingest.StagedFile) string {
	if f.Pages > 0 {
		return fmt.Sprintf("%s, %d pages, %d chars", f.ContentType, f.Pages, len(f.Text))
	}
	return fmt.Sprintf("%s, %d chars", f.ContentType, len(f.Text))
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
