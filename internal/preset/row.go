package preset

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// RowParser turns one mod-list table row into a ModEntry.
//
// index is the zero-based position of the row in document order and must be
// used in any *MalformedRowError returned.
type RowParser interface {
	ParseRow(index int, row *goquery.Selection) (ModEntry, error)
}

// PositionalRowParser reads rows the way launcher exports lay them out: the
// row's inner markup is re-parsed as a standalone document, the first body
// child is the text "<display name>\n<metadata>", and the body child at
// index 3 is the mod link.
//
// Re-parsing outside a table drops the <td> wrappers, which is what makes
// these positions line up. Any other layout needs SelectorRowParser.
type PositionalRowParser struct {
	// Parser is used to re-parse row fragments. Nil means GoqueryParser.
	Parser HTMLParser
}

const (
	nameChildIndex = 0
	linkChildIndex = 3
)

// ParseRow implements RowParser.
func (p PositionalRowParser) ParseRow(index int, row *goquery.Selection) (ModEntry, error) {
	inner, err := row.Html()
	if err != nil {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("render row markup: %v", err)}
	}

	parser := p.Parser
	if parser == nil {
		parser = GoqueryParser{}
	}
	frag, err := parser.Parse(strings.NewReader(inner))
	if err != nil {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: err.Error()}
	}

	children := frag.Find("body").Contents()

	if children.Length() <= nameChildIndex {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: "row has no child nodes"}
	}
	first := children.Get(nameChildIndex)
	if first.Type != html.TextNode {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("first child is <%s>, want text", first.Data)}
	}

	if children.Length() <= linkChildIndex {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("missing link child at index %d (row has %d child nodes)", linkChildIndex, children.Length())}
	}
	link := children.Get(linkChildIndex)
	if link.Type != html.ElementNode {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("child %d is not an element", linkChildIndex)}
	}
	href, ok := nodeAttr(link, "href")
	if !ok {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("child %d <%s> has no href", linkChildIndex, link.Data)}
	}

	return entryFrom(index, DeriveName(first.Data), href)
}

// SelectorRowParser reads rows with CSS selectors relative to the row instead
// of child positions. The name element's first line is used as raw name text.
type SelectorRowParser struct {
	Strategy Strategy
}

// ParseRow implements RowParser.
func (p SelectorRowParser) ParseRow(index int, row *goquery.Selection) (ModEntry, error) {
	nameSel := row.Find(p.Strategy.NameSelector).First()
	if nameSel.Length() == 0 {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("no match for name selector %q", p.Strategy.NameSelector)}
	}
	linkSel := row.Find(p.Strategy.LinkSelector).First()
	if linkSel.Length() == 0 {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("no match for link selector %q", p.Strategy.LinkSelector)}
	}

	attr := p.Strategy.LinkAttr
	if attr == "" {
		attr = "href"
	}
	href, ok := linkSel.Attr(attr)
	if !ok {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("link has no %s attribute", attr)}
	}

	firstLine, _, _ := strings.Cut(strings.TrimSpace(nameSel.Text()), "\n")
	return entryFrom(index, normalizeName(firstLine), strings.TrimSpace(href))
}

func entryFrom(index int, name, href string) (ModEntry, error) {
	id, ok := DeriveID(href)
	if !ok {
		return ModEntry{}, &MalformedRowError{Row: index, Reason: fmt.Sprintf("link %q leaves no id after dropping a %d-character prefix", href, IDPrefixLen)}
	}
	return ModEntry{Name: name, ID: id}, nil
}

// DeriveName turns a row's raw first-child text into a preset name.
//
// Only the text before the first newline is used; text without a newline
// yields an empty name. Whitespace is removed, the rest lowercased, and
// anything outside [a-zA-Z ] dropped.
func DeriveName(raw string) string {
	i := strings.IndexByte(raw, '\n')
	if i < 0 {
		return ""
	}
	return normalizeName(raw[:i])
}

func normalizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.ToLower(s)
	// Spaces are already gone; the filter still allows them.
	return strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == ' ' {
			return r
		}
		return -1
	}, s)
}

// DeriveID returns the part of href after its last '/' with the first
// IDPrefixLen characters dropped. ok is false when nothing would remain.
func DeriveID(href string) (id string, ok bool) {
	tail := href[strings.LastIndexByte(href, '/')+1:]
	if len(tail) <= IDPrefixLen {
		return "", false
	}
	return tail[IDPrefixLen:], true
}

func nodeAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

var (
	_ RowParser = PositionalRowParser{}
	_ RowParser = SelectorRowParser{}
)
