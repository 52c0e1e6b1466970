package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/localdoc/internal/extract"
)

func writeFixturePDF(t *testing.T, path string, pages ...string) {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 11)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.MultiCell(0, 5, text, "", "L", false)
		}
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("write fixture pdf: %v", err)
	}
}

// Smoke test: run extracts a healthy PDF and writes the newline-terminated
// text to the derived output path.
func TestRun_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "paper.pdf")
	writeFixturePDF(t, in, "an actual sentence to keep")

	cfg := config{inputPath: in, outputPath: deriveOutputPath(in), quiet: true}
	if err := run(cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "paper.txt"))
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	text := string(b)
	if !strings.Contains(text, "an actual sentence to keep") {
		t.Fatalf("expected extracted text, got %q", text)
	}
	if !strings.HasSuffix(text, "\n") {
		t.Fatalf("expected newline-terminated output, got %q", text)
	}
}

// A previous output must be fully replaced, not appended to.
func TestRun_OverwritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "paper.pdf")
	out := filepath.Join(dir, "paper.txt")
	writeFixturePDF(t, in, "fresh content")
	if err := os.WriteFile(out, []byte(strings.Repeat("stale ", 100)), 0o644); err != nil {
		t.Fatalf("write stale output: %v", err)
	}

	if err := run(config{inputPath: in, outputPath: out, quiet: true}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(b), "stale") {
		t.Fatalf("expected overwrite, found stale content in %q", b)
	}
}

// When every backend fails no output file may appear.
func TestRun_TotalFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.pdf")
	out := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(in, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write bad input: %v", err)
	}

	err := run(config{inputPath: in, outputPath: out, quiet: true})
	if err == nil {
		t.Fatalf("expected error for unparseable input")
	}
	if _, serr := os.Stat(out); !os.IsNotExist(serr) {
		t.Fatalf("expected no output file, stat err=%v", serr)
	}
}

// Unknown document types are rejected before any backend runs.
func TestRun_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.docx")
	if err := os.WriteFile(in, []byte("zip bytes"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	err := run(config{inputPath: in, outputPath: filepath.Join(dir, "notes.txt"), quiet: true})
	if !errors.Is(err, extract.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestDeriveOutputPath(t *testing.T) {
	if got := deriveOutputPath(filepath.Join("a", "b", "paper.pdf")); got != filepath.Join("a", "b", "paper.txt") {
		t.Fatalf("unexpected derived path %q", got)
	}
	if got := deriveOutputPath("noext"); got != "noext.txt" {
		t.Fatalf("unexpected derived path %q", got)
	}
}
