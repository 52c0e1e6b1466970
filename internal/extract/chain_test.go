package extract

import (
    "errors"
    "strings"
    "testing"
)

// fakeExtractor adapts a func to the Extractor interface for chain tests.
type fakeExtractor struct {
    name string
    fn   func(path string) (Document, error)
}

func (f fakeExtractor) Name() string { return f.name }

func (f fakeExtractor) Extract(path string) (Document, error) { return f.fn(path) }

// When the first backend succeeds the chain must not touch later backends.
func TestChain_FirstSuccessShortCircuits(t *testing.T) {
    first := fakeExtractor{name: "a", fn: func(string) (Document, error) {
        return Document{Text: "hello\n", Pages: 1}, nil
    }}
    second := fakeExtractor{name: "b", fn: func(string) (Document, error) {
        t.Fatalf("second backend must not run when the first succeeds")
        return Document{}, nil
    }}

    doc, backend, err := Chain{first, second}.Extract("in.pdf")
    if err != nil {
        t.Fatalf("chain error: %v", err)
    }
    if backend != "a" {
        t.Fatalf("expected backend 'a', got %q", backend)
    }
    if doc.Text != "hello\n" {
        t.Fatalf("unexpected text %q", doc.Text)
    }
}

// A primary failure must fall through to the next backend in priority order.
func TestChain_FallsBackOnFailure(t *testing.T) {
    first := fakeExtractor{name: "a", fn: func(string) (Document, error) {
        return Document{}, errors.New("broken xref")
    }}
    second := fakeExtractor{name: "b", fn: func(string) (Document, error) {
        return Document{Text: "rescued\n", Pages: 1}, nil
    }}

    doc, backend, err := Chain{first, second}.Extract("in.pdf")
    if err != nil {
        t.Fatalf("chain error: %v", err)
    }
    if backend != "b" {
        t.Fatalf("expected fallback backend 'b', got %q", backend)
    }
    if doc.Text != "rescued\n" {
        t.Fatalf("unexpected text %q", doc.Text)
    }
}

// When every backend fails the error must carry each backend's failure in
// attempt order, and wrapped sentinels must stay visible to errors.Is.
func TestChain_AllFailReportsEveryError(t *testing.T) {
    sentinel := errors.New("file vanished")
    first := fakeExtractor{name: "a", fn: func(string) (Document, error) {
        return Document{}, errors.New("primary exploded")
    }}
    second := fakeExtractor{name: "b", fn: func(string) (Document, error) {
        return Document{}, sentinel
    }}

    _, _, err := Chain{first, second}.Extract("in.pdf")
    if err == nil {
        t.Fatalf("expected error when all backends fail")
    }
    msg := err.Error()
    if !strings.Contains(msg, "a: primary exploded") {
        t.Fatalf("expected primary error in %q", msg)
    }
    if !strings.Contains(msg, "b: file vanished") {
        t.Fatalf("expected fallback error in %q", msg)
    }
    if strings.Index(msg, "primary exploded") > strings.Index(msg, "file vanished") {
        t.Fatalf("expected errors in attempt order, got %q", msg)
    }
    if !errors.Is(err, sentinel) {
        t.Fatalf("expected errors.Is to find the wrapped sentinel")
    }
}

// ForFile picks backends by extension, case-insensitively; unknown types
// are rejected with ErrUnsupported.
func TestForFile_SelectsByExtension(t *testing.T) {
    chain, err := ForFile("paper.pdf")
    if err != nil {
        t.Fatalf("pdf: %v", err)
    }
    if len(chain) != 2 || chain[0].Name() != "plaintext" || chain[1].Name() != "content" {
        t.Fatalf("unexpected pdf chain: %v", names(chain))
    }

    chain, err = ForFile("PAGE.HTML")
    if err != nil {
        t.Fatalf("html: %v", err)
    }
    if len(chain) != 1 || chain[0].Name() != "html" {
        t.Fatalf("unexpected html chain: %v", names(chain))
    }

    if _, err = ForFile("notes.docx"); !errors.Is(err, ErrUnsupported) {
        t.Fatalf("expected ErrUnsupported, got %v", err)
    }
}

func names(c Chain) []string {
    out := make([]string, 0, len(c))
    for _, e := range c {
        out = append(out, e.Name())
    }
    return out
}

// Preview bounds by runes, never splitting a multi-byte character.
func TestPreview_RuneBounded(t *testing.T) {
    if got := Preview("short", 2000); got != "short" {
        t.Fatalf("expected whole string, got %q", got)
    }
    if got := Preview("abcdef", 3); got != "abc" {
        t.Fatalf("expected 'abc', got %q", got)
    }
    if got := Preview("äöäöäö", 3); got != "äöä" {
        t.Fatalf("expected 'äöä', got %q", got)
    }
    if got := Preview("anything", 0); got != "" {
        t.Fatalf("expected empty preview for n=0, got %q", got)
    }
}
