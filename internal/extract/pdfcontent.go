package extract

import (
    "fmt"
    "math"
    "strings"

    "rsc.io/pdf"
)

// lineTolerance is the vertical distance, in points, within which two text
// fragments are treated as sitting on the same line.
const lineTolerance = 0.5

// wordGapFactor scales the font size into the horizontal gap beyond which
// two same-line fragments are separate words.
const wordGapFactor = 0.3

// fallbackFontSize stands in for fragments that report no font size.
const fallbackFontSize = 12

// ContentExtractor is the fallback PDF backend. It reassembles the raw
// positioned text fragments of each page's content stream, which survives
// some files the plain-text backend rejects at the cost of rougher output.
type ContentExtractor struct{}

func (ContentExtractor) Name() string { return "content" }

// Extract converts the PDF at path into a Document with one newline
// terminated segment per page, identical page semantics to the plain-text
// backend: empty pages yield empty segments.
func (ContentExtractor) Extract(path string) (doc Document, err error) {
    // This parser panics rather than returning errors on malformed files.
    defer func() {
        if rec := recover(); rec != nil {
            err = fmt.Errorf("parse pdf: %v", rec)
        }
    }()

    r, err := pdf.Open(path)
    if err != nil {
        return Document{}, fmt.Errorf("open pdf: %w", err)
    }

    total := r.NumPage()
    var b strings.Builder
    for i := 1; i <= total; i++ {
        p := r.Page(i)
        if p.V.IsNull() {
            b.WriteByte('\n')
            continue
        }
        b.WriteString(normalizePage(pageText(p.Content())))
        b.WriteByte('\n')
    }
    return Document{Text: b.String(), Pages: total}, nil
}

// pageText flattens one page's positioned fragments into plain text. The
// parser often emits one fragment per glyph and drops space glyphs, so the
// line breaks whenever the baseline moves, and a space is inserted where
// the horizontal gap between fragments exceeds what the previous glyph's
// width explains. Files whose fragments carry no geometry at all (constant
// position, zero width) degrade to raw concatenation and lose word gaps.
func pageText(c pdf.Content) string {
    var b strings.Builder
    lastY := math.Inf(1)
    lastEnd := math.Inf(-1)
    for _, t := range c.Text {
        switch {
        case b.Len() == 0:
        case math.Abs(t.Y-lastY) > lineTolerance:
            b.WriteByte('\n')
        case t.X-lastEnd > wordGap(t.FontSize):
            b.WriteByte(' ')
        }
        b.WriteString(t.S)
        lastY = t.Y
        lastEnd = t.X + t.W
    }
    return b.String()
}

func wordGap(fontSize float64) float64 {
    if fontSize < 1 {
        fontSize = fallbackFontSize
    }
    return fontSize * wordGapFactor
}
