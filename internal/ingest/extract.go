package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const pdfMIME = "application/pdf"

// Extractor reads a chosen file into a StagedFile.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor returns an Extractor that logs to log.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Extract reads path. PDFs are converted to text page by page; anything else
// is taken verbatim.
func (e *Extractor) Extract(ctx context.Context, path string) (*StagedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.log.Error("read file", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("read file: %w", err)
	}

	mtype := mimetype.Detect(data)
	staged := &StagedFile{
		Path:        path,
		Name:        filepath.Base(path),
		ContentType: mtype.String(),
	}

	if !mtype.Is(pdfMIME) {
		staged.Text = string(data)
		e.log.Info("staged text file", zap.String("file", staged.Name), zap.Int("bytes", len(data)))
		return staged, nil
	}

	src, err := openPDF(data)
	if err != nil {
		e.log.Error("open pdf", zap.String("file", staged.Name), zap.Error(err))
		return nil, err
	}
	text, err := joinPages(ctx, src)
	if err != nil {
		e.log.Error("extract pdf pages", zap.String("file", staged.Name), zap.Error(err))
		return nil, err
	}
	staged.Text = text
	staged.Pages = src.NumPage()
	e.log.Info("staged pdf", zap.String("file", staged.Name), zap.Int("pages", staged.Pages))
	return staged, nil
}

// pageSource yields the text of numbered pages (1-based).
type pageSource interface {
	NumPage() int
	PageText(ctx context.Context, n int) (string, error)
}

// joinPages extracts every page concurrently and joins them with newlines in
// page order. Any page failure fails the whole document.
func joinPages(ctx context.Context, src pageSource) (string, error) {
	n := src.NumPage()
	texts := make([]string, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := 1; i <= n; i++ {
		g.Go(func() error {
			text, err := src.PageText(gctx, i)
			if err != nil {
				return fmt.Errorf("page %d: %w", i, err)
			}
			texts[i-1] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(texts, "\n"), nil
}

// pdfDocument opens a fresh reader per page so pages can be read in
// parallel; the pdf reader is not safe for concurrent use.
type pdfDocument struct {
	data  []byte
	pages int
}

func openPDF(data []byte) (doc *pdfDocument, err error) {
	defer recoverPDF(&err)
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &pdfDocument{data: data, pages: r.NumPage()}, nil
}

func (d *pdfDocument) NumPage() int { return d.pages }

// PageText joins the page's non-empty text items with single spaces, top
// row first.
func (d *pdfDocument) PageText(ctx context.Context, n int) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	defer recoverPDF(&err)

	r, err := pdf.NewReader(bytes.NewReader(d.data), int64(len(d.data)))
	if err != nil {
		return "", err
	}
	page := r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}
	var items []string
	for _, row := range rows {
		for _, item := range row.Content {
			if item.S != "" {
				items = append(items, item.S)
			}
		}
	}
	return strings.Join(items, " "), nil
}

// The pdf package panics on some malformed documents.
func recoverPDF(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed pdf: %v", r)
	}
}
