package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/localdoc/internal/buildinfo"
	"github.com/hyperifyio/localdoc/internal/extract"
)

// previewChars bounds how much of the extracted text is echoed to stdout.
const previewChars = 2000

type config struct {
	inputPath  string
	outputPath string
	quiet      bool
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		outputPath  string
		quiet       bool
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&outputPath, "o", "", "Path for the extracted text (default: input path with a .txt extension)")
	flag.BoolVar(&quiet, "quiet", false, "Suppress the stdout preview")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("pdftext " + buildinfo.String())
		return
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pdftext [flags] <document.pdf|document.html>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config{
		inputPath:  flag.Arg(0),
		outputPath: outputPath,
		quiet:      quiet,
	}
	if cfg.outputPath == "" {
		cfg.outputPath = deriveOutputPath(cfg.inputPath)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// run extracts the input document, persists the text and prints the bounded
// preview. On total extraction failure nothing is written.
func run(cfg config) error {
	chain, err := extract.ForFile(cfg.inputPath)
	if err != nil {
		return err
	}
	doc, backend, err := chain.Extract(cfg.inputPath)
	if err != nil {
		return fmt.Errorf("extract %s: %w", cfg.inputPath, err)
	}

	if err := os.WriteFile(cfg.outputPath, []byte(doc.Text), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().
		Str("backend", backend).
		Int("pages", doc.Pages).
		Int("chars", utf8.RuneCountInString(doc.Text)).
		Str("output", cfg.outputPath).
		Msg("extracted")
	if doc.Title != "" {
		log.Debug().Str("title", doc.Title).Msg("document title")
	}

	if !cfg.quiet {
		fmt.Printf("--- preview (first %d chars) ---\n", previewChars)
		fmt.Println(extract.Preview(doc.Text, previewChars))
	}
	return nil
}

// deriveOutputPath swaps the input extension for .txt, keeping the output
// next to its source.
func deriveOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".txt"
}
