package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ragdesk/internal/config"
	"github.com/five82/ragdesk/internal/explore"
)

// exploreFormRows is the height taken by everything but the table body.
const exploreFormRows = 9

const sourceColumnWidth = 28

type exploreState struct {
	table *explore.Table
	grid  table.Model
	pager paginator.Model

	search    textinput.Model
	searching bool

	// collection is the one the table was loaded from. Edits go there, not
	// to whatever the selector shows now.
	collection string
	summary    string
	loaded     bool

	editor *editorModal
}

func newExploreState(cfg config.Config) exploreState {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = explore.DefaultPageSize
	}

	grid := table.New(
		table.WithColumns(exploreColumns(80)),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = pageSize
	pager.SetTotalPages(0)

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search source and text"

	return exploreState{
		table:  explore.NewTable(pageSize),
		grid:   grid,
		pager:  pager,
		search: search,
	}
}

func exploreColumns(width int) []table.Column {
	src := min(sourceColumnWidth, max(width/3, 8))
	return []table.Column{
		{Title: "Source", Width: src},
		{Title: "Text", Width: max(width-src-4, 10)},
	}
}

func (e *exploreState) resize(width, height int) {
	e.grid.SetColumns(exploreColumns(width))
	e.grid.SetWidth(width)
	e.grid.SetHeight(min(e.table.PageSize()+1, max(height-exploreFormRows, 3)))
	e.search.Width = max(width-20, 10)
	e.sync()
}

// sync copies the current page of the table model into the widgets.
func (e *exploreState) sync() {
	cols := e.grid.Columns()
	textWidth := 40
	srcWidth := sourceColumnWidth
	if len(cols) == 2 {
		srcWidth, textWidth = cols[0].Width, cols[1].Width
	}

	page := e.table.PageRows()
	rows := make([]table.Row, 0, len(page))
	for _, r := range page {
		rows = append(rows, table.Row{
			truncate(oneLine(r.Source), srcWidth),
			truncate(oneLine(r.Text), textWidth),
		})
	}
	e.grid.SetRows(rows)
	if c := e.grid.Cursor(); c >= len(rows) {
		e.grid.SetCursor(max(len(rows)-1, 0))
	}

	e.pager.SetTotalPages(e.table.Len())
	e.pager.Page = e.table.Page()
}

func (m Model) handleExploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.explore
	switch {
	case key.Matches(msg, m.keys.Load):
		tok := m.busy.Begin("Loading collection")
		return m, loadExploreCmd(m.ctx, m.explorer, m.gen, tok, m.selectors.Explore.Value())

	case key.Matches(msg, m.keys.NextCollection):
		m.selectors.Explore.Next()
		return m, nil

	case key.Matches(msg, m.keys.PrevCollection):
		m.selectors.Explore.Prev()
		return m, nil
	}

	if !e.loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		e.searching = true
		cmd := m.syncFocus()
		return m, cmd

	case key.Matches(msg, m.keys.SortSource):
		e.table.SortBy(explore.ColumnSource)
		e.sync()

	case key.Matches(msg, m.keys.SortText):
		e.table.SortBy(explore.ColumnText)
		e.sync()

	case key.Matches(msg, m.keys.NextPage):
		e.table.NextPage()
		e.grid.SetCursor(0)
		e.sync()

	case key.Matches(msg, m.keys.PrevPage):
		e.table.PrevPage()
		e.grid.SetCursor(0)
		e.sync()

	case key.Matches(msg, m.keys.FirstPage):
		e.table.SetPage(0)
		e.grid.SetCursor(0)
		e.sync()

	case key.Matches(msg, m.keys.LastPage):
		e.table.SetPage(e.table.PageCount() - 1)
		e.grid.SetCursor(0)
		e.sync()

	case key.Matches(msg, m.keys.Up):
		e.grid.MoveUp(1)

	case key.Matches(msg, m.keys.Down):
		e.grid.MoveDown(1)

	case key.Matches(msg, m.keys.Confirm):
		row, ok := e.table.Row(e.grid.Cursor())
		if !ok {
			return m, nil
		}
		ed := newEditorModal(explore.OpenEditor(row), m.width, m.height)
		e.editor = &ed
		cmd := e.editor.text.Focus()
		return m, cmd
	}
	return m, nil
}

// handleSearchKey edits the query. enter keeps it, esc clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.explore
	switch msg.Type {
	case tea.KeyEnter:
		e.searching = false
		e.search.Blur()
		return m, nil
	case tea.KeyEsc:
		e.searching = false
		e.search.Blur()
		e.search.SetValue("")
		e.table.Search("")
		e.grid.SetCursor(0)
		e.sync()
		return m, nil
	}

	var cmd tea.Cmd
	e.search, cmd = e.search.Update(msg)
	if e.search.Value() != e.table.Query() {
		e.table.Search(e.search.Value())
		e.grid.SetCursor(0)
		e.sync()
	}
	return m, cmd
}

func (m Model) handleExploreLoaded(msg exploreLoadedMsg) (tea.Model, tea.Cmd) {
	m.busy.End(msg.tok)
	if msg.resp != nil {
		e := &m.explore
		e.collection = msg.collection
		e.summary = msg.resp.Summary
		e.loaded = true
		e.searching = false
		e.search.SetValue("")
		e.table.Reset(msg.resp.Documents)
		e.grid.SetCursor(0)
		e.sync()
	}
	return m.notify(msg.res, false)
}

func (m Model) renderExplore() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	e := m.explore
	var b strings.Builder

	b.WriteString(m.selectorLine("Collection", m.selectors.Explore, styles))
	b.WriteString("\n")

	if !e.loaded {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("Press l to load the selected collection"))
		return m.renderTitledBox("Explore", b.String(), m.width, m.contentHeight(), true)
	}

	summary := e.summary
	if summary == "" {
		summary = fmt.Sprintf("%d chunks", e.table.Total())
	}
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-18s", "Loaded")))
	b.WriteString(styles.Text.Bold(true).Render(e.collection))
	b.WriteString(styles.FaintText.Render("  " + truncate(oneLine(summary), max(m.width-40, 10))))
	b.WriteString("\n")

	switch {
	case e.searching:
		b.WriteString(e.search.View())
	case e.table.Query() != "":
		b.WriteString(styles.MutedText.Render("Filter ") + styles.AccentText.Render(e.table.Query()))
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("  %d of %d", e.table.Len(), e.table.Total())))
	default:
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d chunks, / to search", e.table.Total())))
	}
	b.WriteString(styles.FaintText.Render("  sort: " + e.table.Sort().Label()))
	b.WriteString("\n\n")

	grid := e.grid
	grid.SetStyles(m.tableStyles())
	b.WriteString(grid.View())
	b.WriteString("\n")

	pager := e.pager
	pager.ActiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Render("•")
	pager.InactiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint)).Render("•")
	b.WriteString(pager.View())
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("  page %d/%d", e.table.Page()+1, e.table.PageCount())))

	return m.renderTitledBox("Explore", b.String(), m.width, m.contentHeight(), true)
}

func (m Model) tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Text))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(false)
	s.Cell = s.Cell.Foreground(lipgloss.Color(m.theme.Text))
	return s
}
