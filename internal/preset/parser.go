package preset

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// HTMLParser turns HTML text into a traversable document tree.
//
// The extractor never touches a live browser DOM; every document (including
// the per-row fragments it re-parses) goes through this interface.
type HTMLParser interface {
	Parse(r io.Reader) (*goquery.Document, error)
}

// GoqueryParser is the default HTMLParser. It uses the HTML5 parsing
// algorithm from golang.org/x/net/html, so misplaced table cells in a
// re-parsed row fragment are dropped the same way a browser drops them.
type GoqueryParser struct{}

// Parse implements HTMLParser.
func (GoqueryParser) Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

var _ HTMLParser = GoqueryParser{}
