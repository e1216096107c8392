package explore

import (
	"sort"
	"strings"

	"github.com/five82/ragdesk/internal/ragapi"
)

// Column identifies a sortable column.
type Column int

const (
	ColumnNone Column = iota
	ColumnSource
	ColumnText
)

func (c Column) String() string {
	switch c {
	case ColumnSource:
		return "Source"
	case ColumnText:
		return "Text"
	default:
		return "none"
	}
}

// Sort is the active ordering.
type Sort struct {
	Column Column
	Desc   bool
}

// Label renders the ordering for the status line.
func (s Sort) Label() string {
	if s.Column == ColumnNone {
		return "unsorted"
	}
	dir := "asc"
	if s.Desc {
		dir = "desc"
	}
	return s.Column.String() + " " + dir
}

// DefaultPageSize is used when a non-positive size is requested.
const DefaultPageSize = 10

// Table is the searchable, sortable, paged view over a loaded chunk list.
type Table struct {
	records  []ragapi.Chunk
	view     []ragapi.Chunk
	query    string
	sort     Sort
	page     int
	pageSize int
}

// NewTable returns an empty table.
func NewTable(pageSize int) *Table {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Table{pageSize: pageSize, view: []ragapi.Chunk{}}
}

// Reset replaces the records and clears search, sort and paging.
func (t *Table) Reset(records []ragapi.Chunk) {
	t.records = append([]ragapi.Chunk(nil), records...)
	t.query = ""
	t.sort = Sort{}
	t.page = 0
	t.rebuild()
}

// Len is the number of records matching the current search.
func (t *Table) Len() int { return len(t.view) }

// Total is the number of loaded records.
func (t *Table) Total() int { return len(t.records) }

// Query returns the active search string.
func (t *Table) Query() string { return t.query }

// Sort returns the active ordering.
func (t *Table) Sort() Sort { return t.sort }

// Search filters rows whose source or text contains q, ignoring case.
func (t *Table) Search(q string) {
	t.query = q
	t.page = 0
	t.rebuild()
}

// SortBy orders by col. Selecting the active column flips the direction.
func (t *Table) SortBy(col Column) {
	if t.sort.Column == col && col != ColumnNone {
		t.sort.Desc = !t.sort.Desc
	} else {
		t.sort = Sort{Column: col}
	}
	t.rebuild()
}

// Page is the zero-based current page.
func (t *Table) Page() int { return t.page }

// PageSize is the number of rows per page.
func (t *Table) PageSize() int { return t.pageSize }

// PageCount is at least 1 so an empty table still has a page to show.
func (t *Table) PageCount() int {
	if len(t.view) == 0 {
		return 1
	}
	return (len(t.view) + t.pageSize - 1) / t.pageSize
}

// NextPage advances unless already on the last page.
func (t *Table) NextPage() {
	if t.page < t.PageCount()-1 {
		t.page++
	}
}

// PrevPage goes back unless already on the first page.
func (t *Table) PrevPage() {
	if t.page > 0 {
		t.page--
	}
}

// SetPage jumps to page p, clamped into range.
func (t *Table) SetPage(p int) {
	t.page = max(0, min(p, t.PageCount()-1))
}

// PageRows returns the rows visible on the current page.
func (t *Table) PageRows() []ragapi.Chunk {
	start := t.page * t.pageSize
	if start >= len(t.view) {
		return nil
	}
	end := min(start+t.pageSize, len(t.view))
	return append([]ragapi.Chunk(nil), t.view[start:end]...)
}

// Row returns row i of the current page.
func (t *Table) Row(i int) (ragapi.Chunk, bool) {
	rows := t.PageRows()
	if i < 0 || i >= len(rows) {
		return ragapi.Chunk{}, false
	}
	return rows[i], true
}

func (t *Table) rebuild() {
	q := strings.ToLower(strings.TrimSpace(t.query))
	view := make([]ragapi.Chunk, 0, len(t.records))
	for _, r := range t.records {
		if q == "" || strings.Contains(strings.ToLower(r.Source), q) || strings.Contains(strings.ToLower(r.Text), q) {
			view = append(view, r)
		}
	}
	if t.sort.Column != ColumnNone {
		key := func(c ragapi.Chunk) string {
			if t.sort.Column == ColumnSource {
				return strings.ToLower(c.Source)
			}
			return strings.ToLower(c.Text)
		}
		desc := t.sort.Desc
		sort.SliceStable(view, func(i, j int) bool {
			if desc {
				return key(view[i]) > key(view[j])
			}
			return key(view[i]) < key(view[j])
		})
	}
	t.view = view
	t.page = max(0, min(t.page, t.PageCount()-1))
}
