package explore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/ragdesk/internal/ragapi"
)

func sources(rows []ragapi.Chunk) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Source
	}
	return out
}

func sample() []ragapi.Chunk {
	return []ragapi.Chunk{
		{Source: "beta.pdf", Text: "Hello world"},
		{Source: "alpha.txt", Text: "zebra crossing"},
		{Source: "Gamma.md", Text: "apple pie"},
	}
}

func TestTable_SearchIsCaseInsensitiveOverBothColumns(t *testing.T) {
	tbl := NewTable(10)
	tbl.Reset(sample())

	tbl.Search("HELLO")
	assert.Equal(t, []string{"beta.pdf"}, sources(tbl.PageRows()))

	tbl.Search("gamma")
	assert.Equal(t, []string{"Gamma.md"}, sources(tbl.PageRows()))

	tbl.Search("nothing")
	assert.Zero(t, tbl.Len())
	assert.Nil(t, tbl.PageRows())
	assert.Equal(t, 1, tbl.PageCount())

	tbl.Search("")
	assert.Equal(t, 3, tbl.Len())
}

func TestTable_SortToggles(t *testing.T) {
	tbl := NewTable(10)
	tbl.Reset(sample())

	tbl.SortBy(ColumnSource)
	assert.Equal(t, []string{"alpha.txt", "beta.pdf", "Gamma.md"}, sources(tbl.PageRows()))
	tbl.SortBy(ColumnSource)
	assert.Equal(t, []string{"Gamma.md", "beta.pdf", "alpha.txt"}, sources(tbl.PageRows()))
	assert.Equal(t, "Source desc", tbl.Sort().Label())

	tbl.SortBy(ColumnText)
	assert.Equal(t, []string{"Gamma.md", "beta.pdf", "alpha.txt"}, sources(tbl.PageRows()))
	assert.False(t, tbl.Sort().Desc)
}

func TestTable_Paging(t *testing.T) {
	var rows []ragapi.Chunk
	for i := range 7 {
		rows = append(rows, ragapi.Chunk{Source: fmt.Sprintf("doc%d", i), Text: "t"})
	}
	tbl := NewTable(3)
	tbl.Reset(rows)
	assert.Equal(t, 3, tbl.PageCount())

	tbl.PrevPage()
	assert.Equal(t, 0, tbl.Page())
	tbl.NextPage()
	tbl.NextPage()
	tbl.NextPage()
	assert.Equal(t, 2, tbl.Page())
	assert.Equal(t, []string{"doc6"}, sources(tbl.PageRows()))

	row, ok := tbl.Row(0)
	require.True(t, ok)
	assert.Equal(t, "doc6", row.Source)
	_, ok = tbl.Row(1)
	assert.False(t, ok)

	tbl.Search("doc1")
	assert.Equal(t, 0, tbl.Page())

	tbl.SetPage(99)
	assert.Equal(t, 0, tbl.Page())
}

func TestTable_ResetClearsState(t *testing.T) {
	tbl := NewTable(0)
	assert.Equal(t, DefaultPageSize, tbl.PageSize())
	tbl.Reset(sample())
	tbl.Search("hello")
	tbl.SortBy(ColumnText)

	tbl.Reset(sample()[:2])
	assert.Empty(t, tbl.Query())
	assert.Equal(t, Sort{}, tbl.Sort())
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 2, tbl.Total())
}

func TestOpenEditor_CapturesOriginal(t *testing.T) {
	ed := OpenEditor(ragapi.Chunk{Source: "doc1", Text: "hello"})
	assert.Equal(t, "doc1", ed.Source)
	assert.Equal(t, "hello", ed.Text)
	assert.Equal(t, "hello", ed.OriginalText)
	assert.False(t, ed.Dirty())

	ed.Text = "hello there"
	assert.True(t, ed.Dirty())

	req := ed.SaveRequest("docs")
	require.NotNil(t, req.NewText)
	assert.Equal(t, ragapi.ChunkSave, req.Action)
	assert.Equal(t, "docs", req.Collection)
	assert.Equal(t, "doc1", req.Source)
	assert.Equal(t, "hello", req.OriginalText)
	assert.Equal(t, "hello there", *req.NewText)

	del := ed.DeleteRequest("docs")
	assert.Equal(t, ragapi.ChunkDelete, del.Action)
	assert.Equal(t, "hello", del.OriginalText)
	assert.Nil(t, del.NewText)
}

type fakeBackend struct {
	resp    *ragapi.ExploreResponse
	err     error
	updates []ragapi.UpdateChunkRequest
}

func (f *fakeBackend) Explore(context.Context, string) (*ragapi.ExploreResponse, error) {
	return f.resp, f.err
}

func (f *fakeBackend) UpdateChunk(_ context.Context, req ragapi.UpdateChunkRequest) (*ragapi.UpdateChunkResponse, error) {
	f.updates = append(f.updates, req)
	return &ragapi.UpdateChunkResponse{}, f.err
}

func TestService_Load(t *testing.T) {
	backend := &fakeBackend{resp: &ragapi.ExploreResponse{Summary: "3 chunks", Documents: sample()}}
	svc := New(backend, nil)

	resp, res := svc.Load(context.Background(), "docs")
	require.True(t, res.OK)
	assert.Equal(t, "3 chunks", resp.Summary)

	backend.err = errors.New("dial tcp: refused")
	resp, res = svc.Load(context.Background(), "docs")
	assert.Nil(t, resp)
	assert.False(t, res.OK)
	assert.Empty(t, res.Alert)
}

func TestService_SaveAndDelete(t *testing.T) {
	backend := &fakeBackend{}
	svc := New(backend, nil)
	ed := OpenEditor(ragapi.Chunk{Source: "doc1", Text: "hello"})
	ed.Text = "bye"

	res := svc.Save(context.Background(), "docs", ed)
	assert.True(t, res.OK)
	assert.Equal(t, SavedAlert, res.Alert)

	res = svc.Delete(context.Background(), "docs", ed)
	assert.True(t, res.OK)
	assert.Equal(t, DeletedAlert, res.Alert)
	require.Len(t, backend.updates, 2)
	assert.Equal(t, ragapi.ChunkDelete, backend.updates[1].Action)

	backend.err = &ragapi.ServerError{Path: "/update_chunk", Message: "Chunk not found"}
	res = svc.Save(context.Background(), "docs", ed)
	assert.False(t, res.OK)
	assert.Equal(t, "Chunk not found", res.Alert)
}
