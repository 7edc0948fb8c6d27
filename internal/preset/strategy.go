package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Strategy describes a selector-based row layout.
type Strategy struct {
	ListSelector string `json:"list_selector,omitempty"` // defaults to DefaultListSelector
	RowSelector  string `json:"row_selector,omitempty"`  // defaults to DefaultRowSelector
	NameSelector string `json:"name_selector"`           // evaluated relative to each row
	LinkSelector string `json:"link_selector"`           // evaluated relative to each row
	LinkAttr     string `json:"link_attr,omitempty"`     // defaults to "href"
}

// LoadStrategyFile loads and validates a JSON strategy file.
func LoadStrategyFile(path string) (*Strategy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy file: %w", err)
	}

	var s Strategy
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse strategy json: %w", err)
	}

	if strings.TrimSpace(s.NameSelector) == "" {
		return nil, fmt.Errorf("strategy has no name_selector")
	}
	if strings.TrimSpace(s.LinkSelector) == "" {
		return nil, fmt.Errorf("strategy has no link_selector")
	}
	return &s, nil
}

// Extractor builds an Extractor that reads rows with s.
func (s *Strategy) Extractor() *Extractor {
	e := NewExtractor(SelectorRowParser{Strategy: *s})
	if s.ListSelector != "" {
		e.ListSelector = s.ListSelector
	}
	if s.RowSelector != "" {
		e.RowSelector = s.RowSelector
	}
	return e
}
