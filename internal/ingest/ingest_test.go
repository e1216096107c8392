package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/ragdesk/internal/ragapi"
)

// slowPages finishes later pages first.
type slowPages struct {
	texts []string
	fail  int
}

func (s slowPages) NumPage() int { return len(s.texts) }

func (s slowPages) PageText(ctx context.Context, n int) (string, error) {
	delay := time.Duration(len(s.texts)-n) * 5 * time.Millisecond
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if n == s.fail {
		return "", errors.New("bad xref")
	}
	return s.texts[n-1], nil
}

func TestJoinPages_PageOrderRegardlessOfCompletion(t *testing.T) {
	src := slowPages{texts: []string{"T1 a", "T2", "", "T4 b c"}}
	got, err := joinPages(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "T1 a\nT2\n\nT4 b c", got)
}

func TestJoinPages_PageFailureFailsDocument(t *testing.T) {
	src := slowPages{texts: []string{"T1", "T2", "T3"}, fail: 2}
	_, err := joinPages(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

func TestJoinPages_EmptyDocument(t *testing.T) {
	got, err := joinPages(context.Background(), slowPages{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestExtract_NonPDFIsVerbatim(t *testing.T) {
	content := "line one\n\tindented  spaces \r\nünïcode\n"
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	staged, err := NewExtractor(nil).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, staged.Text)
	assert.Equal(t, "notes.txt", staged.Name)
	assert.Equal(t, path, staged.Path)
	assert.Zero(t, staged.Pages)
}

// buildPDF writes a minimal PDF with one page per entry. Each line of a page
// is drawn on its own row, top to bottom.
func buildPDF(pages [][]string) []byte {
	var objs []string
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, lines := range pages {
		var content strings.Builder
		for j, line := range lines {
			fmt.Fprintf(&content, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", 700-20*j, line)
		}
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			5+2*i))
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestExtract_PDFPagesInOrder(t *testing.T) {
	data := buildPDF([][]string{
		{"Page One", "line two"},
		{"Page Two", "line two"},
		{"Page Three", "line two"},
	})
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	staged, err := NewExtractor(nil).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", staged.ContentType)
	assert.Equal(t, 3, staged.Pages)
	assert.Equal(t, "Page One line two\nPage Two line two\nPage Three line two", staged.Text)
}

func TestExtract_MalformedPDFFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nnot really a pdf\n"), 0o600))

	_, err := NewExtractor(nil).Extract(context.Background(), path)
	assert.Error(t, err)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := NewExtractor(nil).Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestPipeline_HappyPath(t *testing.T) {
	var p Pipeline
	assert.Equal(t, Idle, p.Phase())
	assert.True(t, p.ChooserVisible())
	assert.False(t, p.ResetVisible())

	require.NoError(t, p.Choose("/tmp/a.txt"))
	assert.Equal(t, FileChosen, p.Phase())
	assert.Error(t, p.Choose("/tmp/b.txt"))

	require.NoError(t, p.Stage(&StagedFile{Path: "/tmp/a.txt", Name: "a.txt", Text: "hello"}))
	assert.Equal(t, TextStaged, p.Phase())
	assert.False(t, p.ChooserVisible())
	assert.True(t, p.ResetVisible())

	staged, err := p.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "hello", staged.Text)
	assert.Equal(t, Submitting, p.Phase())

	p.SubmitFailed()
	assert.Equal(t, TextStaged, p.Phase())
	assert.Equal(t, "hello", p.Staged().Text)

	_, err = p.BeginSubmit()
	require.NoError(t, err)
	p.SubmitSucceeded()
	assert.Equal(t, Idle, p.Phase())
	assert.Nil(t, p.Staged())
}

func TestPipeline_ExtractFailureReturnsToIdle(t *testing.T) {
	var p Pipeline
	require.NoError(t, p.Choose("/tmp/a.pdf"))
	p.ExtractFailed("/tmp/a.pdf")
	assert.Equal(t, Idle, p.Phase())
	assert.Nil(t, p.Staged())
}

func TestPipeline_StaleResultIgnoredAfterReset(t *testing.T) {
	var p Pipeline
	require.NoError(t, p.Choose("/tmp/a.txt"))
	p.Reset()
	require.NoError(t, p.Choose("/tmp/b.txt"))

	assert.Error(t, p.Stage(&StagedFile{Path: "/tmp/a.txt"}))
	assert.Equal(t, FileChosen, p.Phase())

	p.ExtractFailed("/tmp/a.txt")
	assert.Equal(t, FileChosen, p.Phase())
}

func TestPipeline_ResetAndStale(t *testing.T) {
	var p Pipeline
	require.NoError(t, p.Choose("/tmp/a.txt"))
	require.NoError(t, p.Stage(&StagedFile{Path: "/tmp/a.txt", Text: "x"}))

	p.MarkStale("/tmp/other.txt")
	assert.False(t, p.Stale())
	p.MarkStale("/tmp/a.txt")
	assert.True(t, p.Stale())

	p.Reset()
	assert.Equal(t, Idle, p.Phase())
	assert.False(t, p.Stale())
	assert.True(t, p.ChooserVisible())

	_, err := p.BeginSubmit()
	assert.Error(t, err)
}

type fakeIngest struct {
	got ragapi.IngestRequest
	err error
}

func (f *fakeIngest) Ingest(_ context.Context, req ragapi.IngestRequest) error {
	f.got = req
	return f.err
}

func TestSubmitter_Ingest(t *testing.T) {
	backend := &fakeIngest{}
	sub := NewSubmitter(backend, nil)
	file := &StagedFile{Name: "report.pdf", Text: "body"}
	size := 500

	got := sub.Ingest(context.Background(), file, "docs", &size)
	assert.True(t, got.OK)
	assert.Equal(t, "Data ingested successfully", got.Alert)
	assert.Equal(t, ragapi.IngestRequest{Text: "body", CollectionName: "docs", Source: "report.pdf", ChunkSize: &size}, backend.got)

	backend.err = fmt.Errorf("post: %w", &ragapi.ServerError{Message: "Collection does not exist"})
	got = sub.Ingest(context.Background(), file, "gone", nil)
	assert.False(t, got.OK)
	assert.Equal(t, "Collection does not exist", got.Alert)
	assert.Nil(t, backend.got.ChunkSize)
}

func TestWatch_ReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := Watch(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	for range changes {
	}
}
