// Command modpreset reads a launcher mod-list export (an .html file, stdin, or
// a URL), extracts the mods, and prints them as "@name:id" preset lines.
//
// Usage (file):
//
//	modpreset -file preset.html
//
// Usage (stdin, copy result to the system clipboard):
//
//	cat preset.html | modpreset -clipboard
//
// Usage (fetch URL):
//
//	modpreset -url "https://example.com/preset.html"
//
// Usage (directory mode, JSON array with one result per .html file):
//
//	modpreset -dir ./presets
//
// Debug (show how every row is read):
//
//	modpreset -file preset.html -debug-rows
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"modpreset/internal/metrics"
	"modpreset/internal/metrics/datadog"
	"modpreset/internal/preset"
)

func main() {
	os.Exit(run(
		context.Background(),
		os.Args[1:],
		os.Stdin,
		os.Stdout,
		os.Stderr,
		http.DefaultClient,
		preset.SystemClipboard{},
	))
}

// run is split out from main so we can unit test the command without spawning
// an OS process.
//
// It returns a Unix-style exit code:
//   - 0 for success
//   - 2 for usage/config errors (including a non-.html input file)
//   - 1 for operational/runtime errors
func run(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	httpClient *http.Client,
	clip preset.ClipboardWriter,
) int {
	fs := flag.NewFlagSet("modpreset", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fileFlag := fs.String("file", "", "Path to the exported .html preset")
	urlFlag := fs.String("url", "", "Optional: fetch HTML from URL instead of stdin")
	dirFlag := fs.String("dir", "", "Optional: directory of .html presets; prints a JSON array")
	timeout := fs.Duration("timeout", 20*time.Second, "Timeout for -url fetch")
	charset := fs.String("charset", "", "Input charset label (e.g. windows-1252); default utf-8")
	strategyPath := fs.String("strategy", "", "Optional: JSON file with selector-based row layout")
	skipMalformed := fs.Bool("skip-malformed", false, "Skip unreadable rows instead of failing")
	debugRows := fs.Bool("debug-rows", false, "Debug: print how every row is read (not a preset)")
	toClipboard := fs.Bool("clipboard", false, "Copy the preset to the system clipboard")
	outPath := fs.String("out", "", "Optional: write the preset to this file")
	metricsBackend := fs.String("metrics-backend", "", "Metrics backend: none or datadog (env METRICS_BACKEND)")
	verbose := fs.Bool("v", false, "Enable verbose logs")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.New(stderr, "modpreset: ", log.LstdFlags)

	if *fileFlag != "" && *urlFlag != "" {
		fmt.Fprintf(stderr, "-file and -url are mutually exclusive\n")
		return 2
	}

	closeMetrics, err := setupMetrics(ctx, *metricsBackend, logger, *verbose)
	if err != nil {
		fmt.Fprintf(stderr, "metrics: %v\n", err)
		return 2
	}
	defer closeMetrics()

	extractor := preset.NewExtractor(nil)
	if *strategyPath != "" {
		s, err := preset.LoadStrategyFile(*strategyPath)
		if err != nil {
			fmt.Fprintf(stderr, "load strategy: %v\n", err)
			return 2
		}
		extractor = s.Extractor()
	}
	extractor.SkipMalformed = *skipMalformed
	extractor.Logger = logger

	// Directory mode: stream output as a single JSON array.
	if *dirFlag != "" {
		enc := json.NewEncoder(stdout)
		enc.SetEscapeHTML(false)
		if err := preset.StreamFromDir(stdout, *dirFlag, extractor, enc); err != nil {
			fmt.Fprintf(stderr, "dir extract: %v\n", err)
			return 1
		}
		return 0
	}

	loader := preset.NewLoader(httpClient, *timeout)
	html, err := loader.Load(ctx, preset.Input{
		Path:    *fileFlag,
		URL:     *urlFlag,
		Stdin:   stdin,
		Charset: *charset,
	})
	if err != nil {
		var wk *preset.WrongInputKindError
		if errors.As(err, &wk) {
			fmt.Fprintf(stderr, "%s (%v)\n", preset.UserMessage(err), err)
			return 2
		}
		fmt.Fprintf(stderr, "load html: %v\n", err)
		return 1
	}

	if *debugRows {
		if err := preset.DebugPrintRows(stdout, html, extractor); err != nil {
			fmt.Fprintf(stderr, "debug rows: %v\n", err)
			return 1
		}
		return 0
	}

	p, err := extractor.Extract(strings.NewReader(html))
	if err != nil {
		fmt.Fprintf(stderr, "%s (%v)\n", preset.UserMessage(err), err)
		return 1
	}
	if *verbose {
		logger.Printf("extracted %d mods", len(p))
	}

	return deliver(p.String(), *outPath, *toClipboard, clip, stdout, stderr)
}

// deliver hands the preset to its destination: a file, the clipboard, or
// stdout. A failed clipboard write still prints the preset to stdout so the
// user can copy it by hand.
func deliver(text, outPath string, toClipboard bool, clip preset.ClipboardWriter, stdout, stderr io.Writer) int {
	switch {
	case outPath != "":
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			fmt.Fprintf(stderr, "write preset: %v\n", err)
			return 1
		}
		return 0

	case toClipboard:
		if clip == nil {
			clip = preset.SystemClipboard{}
		}
		if err := clip.WriteText(text); err != nil {
			fmt.Fprintf(stderr, "An error occurred while copying (%v). The mod list is printed below.\n", err)
			_, _ = io.WriteString(stdout, text)
			return 1
		}
		fmt.Fprintln(stderr, "Copied to clipboard!")
		return 0

	default:
		if _, err := io.WriteString(stdout, text); err != nil {
			fmt.Fprintf(stderr, "write preset: %v\n", err)
			return 1
		}
		return 0
	}
}

// setupMetrics installs the selected metrics backend and returns its shutdown
// func. Backend selection: flag, then env METRICS_BACKEND, then none.
func setupMetrics(ctx context.Context, name string, logger *log.Logger, verbose bool) (func(), error) {
	if name == "" {
		name = os.Getenv("METRICS_BACKEND")
	}

	switch name {
	case "", "none":
		if verbose {
			logger.Printf("metrics: disabled (backend=%q)", name)
		}
		return func() {}, nil

	case "datadog":
		tags := datadog.ParseTagsCSV(os.Getenv("METRICS_TAGS"))
		b, err := datadog.NewBackend(ctx, datadog.Options{
			JobName: "modpreset",
			Tags:    tags,
		})
		if err != nil {
			return nil, err
		}
		if verbose {
			logger.Printf("metrics: backend=datadog tags=%v", tags)
		}
		metrics.SetBackend(b)
		return func() {
			metrics.SetBackend(nil)
			if err := b.Close(); err != nil {
				logger.Printf("metrics: datadog close/flush error: %v", err)
			}
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
