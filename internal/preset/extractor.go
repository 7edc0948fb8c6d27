package preset

import (
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"modpreset/internal/metrics"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultListSelector matches the element carrying the mod-list class.
	DefaultListSelector = ".mod-list"
	// DefaultRowSelector matches every table row inside the mod list.
	DefaultRowSelector = "tr"
)

// Extractor locates the mod-list table in a document and converts its rows
// into a Preset.
//
// An Extractor holds no per-call state; one value can serve concurrent
// callers once configured.
type Extractor struct {
	// Parser parses whole documents in ExtractHTML. Nil means GoqueryParser.
	Parser HTMLParser

	// Rows converts a single row. Nil means PositionalRowParser with Parser.
	Rows RowParser

	ListSelector string
	RowSelector  string

	// SkipMalformed drops malformed rows (logging each one) instead of
	// failing the whole document. Off by default.
	SkipMalformed bool

	// Logger receives skipped-row warnings. Nil discards them.
	Logger *log.Logger
}

// NewExtractor returns an Extractor with default selectors. A nil rows uses
// PositionalRowParser.
func NewExtractor(rows RowParser) *Extractor {
	return &Extractor{
		Rows:         rows,
		ListSelector: DefaultListSelector,
		RowSelector:  DefaultRowSelector,
	}
}

// ExtractPreset extracts mods from an already parsed document.
//
// It returns ErrMissingModList when no list element exists and a
// *MalformedRowError for the first row that cannot be read. No partial preset
// is returned on error. A list without rows yields an empty, non-nil Preset.
func (e *Extractor) ExtractPreset(doc *goquery.Document) (Preset, error) {
	list := doc.Find(orDefault(e.ListSelector, DefaultListSelector)).First()
	if list.Length() == 0 {
		return nil, ErrMissingModList
	}

	rows := list.Find(orDefault(e.RowSelector, DefaultRowSelector))
	rp := e.rowParser()

	out := make(Preset, 0, rows.Length())
	for i := 0; i < rows.Length(); i++ {
		m, err := rp.ParseRow(i, rows.Eq(i))
		if err != nil {
			var mr *MalformedRowError
			if e.SkipMalformed && errors.As(err, &mr) {
				e.logger().Printf("preset: skipping %v", mr)
				continue
			}
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Extract parses r with the configured parser and extracts its preset.
// Every call is recorded in the metrics facade.
func (e *Extractor) Extract(r io.Reader) (Preset, error) {
	start := time.Now()

	doc, err := e.parser().Parse(r)
	if err != nil {
		metrics.RecordExtract(statusOf(err), 0, time.Since(start))
		return nil, err
	}

	p, err := e.ExtractPreset(doc)
	metrics.RecordExtract(statusOf(err), len(p), time.Since(start))
	return p, err
}

// ExtractHTML is Extract over a string, returning the rendered preset text.
func (e *Extractor) ExtractHTML(html string) (string, error) {
	p, err := e.Extract(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// ExtractPresetHTML extracts a preset from html with the default extractor.
func ExtractPresetHTML(html string) (string, error) {
	return NewExtractor(nil).ExtractHTML(html)
}

func (e *Extractor) parser() HTMLParser {
	if e.Parser == nil {
		return GoqueryParser{}
	}
	return e.Parser
}

func (e *Extractor) rowParser() RowParser {
	if e.Rows == nil {
		return PositionalRowParser{Parser: e.Parser}
	}
	return e.Rows
}

func (e *Extractor) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return e.Logger
}

func statusOf(err error) string {
	var mr *MalformedRowError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingModList):
		return "missing_mod_list"
	case errors.As(err, &mr):
		return "malformed_row"
	default:
		return "error"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
