package extract

import (
    "fmt"
    "strings"

    "github.com/ledongthuc/pdf"
)

// PlainTextExtractor is the preferred PDF backend. It walks pages in
// document order and decodes each page's text content in reading order.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Name() string { return "plaintext" }

// Extract converts the PDF at path into a Document with one newline
// terminated segment per page. A page without extractable text contributes
// an empty segment; a page-level decode error fails the whole document.
func (PlainTextExtractor) Extract(path string) (doc Document, err error) {
    // The underlying parser panics on some malformed files; the guard turns
    // those into errors so the next backend in the chain can run.
    defer func() {
        if rec := recover(); rec != nil {
            err = fmt.Errorf("parse pdf: %v", rec)
        }
    }()

    f, r, err := pdf.Open(path)
    if err != nil {
        return Document{}, fmt.Errorf("open pdf: %w", err)
    }
    defer f.Close()

    total := r.NumPage()
    var b strings.Builder
    for i := 1; i <= total; i++ {
        p := r.Page(i)
        if p.V.IsNull() {
            // Unresolvable page object: keep the segment, leave it empty.
            b.WriteByte('\n')
            continue
        }
        text, perr := p.GetPlainText(nil)
        if perr != nil {
            return Document{}, fmt.Errorf("page %d: %w", i, perr)
        }
        b.WriteString(normalizePage(text))
        b.WriteByte('\n')
    }
    return Document{Text: b.String(), Pages: total}, nil
}
