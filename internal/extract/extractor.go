package extract

import (
    "errors"
    "fmt"
    "path/filepath"
    "strings"

    "github.com/rs/zerolog/log"
)

// ErrUnsupported marks a file whose type no extraction backend serves.
var ErrUnsupported = errors.New("unsupported document type")

// Document is a simplified representation of extracted document content.
// Text holds one newline-terminated segment per source page; beyond that
// separator no structure (layout, tables) is preserved.
type Document struct {
    Title string // best-effort; empty when the format carries none
    Text  string
    Pages int
}

// Extractor defines a minimal interface for text extraction strategies.
// Implementations can swap parsing backends without changing callers.
type Extractor interface {
    // Name identifies the backend in logs and error messages.
    Name() string
    // Extract reads the file at path and converts it into a Document.
    // Implementations should be deterministic and must return an error
    // rather than panic on malformed input.
    Extract(path string) (Document, error)
}

// Chain is an ordered priority list of extraction backends. Earlier entries
// are preferred; later ones are fallbacks tried only after an earlier one
// fails.
type Chain []Extractor

// Extract tries each backend in order and returns the first successful
// Document together with the name of the backend that produced it. Every
// failure short of the last is logged before the next backend runs; when all
// backends fail the per-backend errors are returned joined in attempt order.
func (c Chain) Extract(path string) (Document, string, error) {
    if len(c) == 0 {
        return Document{}, "", errors.New("no extraction backends")
    }
    var errs []error
    for i, e := range c {
        doc, err := e.Extract(path)
        if err == nil {
            return doc, e.Name(), nil
        }
        errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
        if i < len(c)-1 {
            log.Warn().Err(err).Str("backend", e.Name()).Msg("extraction failed, trying next backend")
        }
    }
    return Document{}, "", errors.Join(errs...)
}

// ForFile returns the backend chain for path based on its extension. PDFs
// get the plain-text backend with the content-stream backend as fallback;
// HTML gets the single HTML backend.
func ForFile(path string) (Chain, error) {
    switch strings.ToLower(filepath.Ext(path)) {
    case ".pdf":
        return Chain{&PlainTextExtractor{}, &ContentExtractor{}}, nil
    case ".html", ".htm":
        return Chain{&HTMLExtractor{}}, nil
    default:
        return nil, fmt.Errorf("%w: %q", ErrUnsupported, path)
    }
}

// Preview returns the first n characters of s, or s itself when shorter.
// The bound is counted in runes so a multi-byte character is never split.
func Preview(s string, n int) string {
    if n <= 0 {
        return ""
    }
    seen := 0
    for i := range s {
        if seen == n {
            return s[:i]
        }
        seen++
    }
    return s
}
