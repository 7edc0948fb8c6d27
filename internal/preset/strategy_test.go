package preset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStrategy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write strategy: %v", err)
	}
	return path
}

func TestLoadStrategyFile(t *testing.T) {
	t.Parallel()

	path := writeStrategy(t, `{
		"row_selector": "tr[data-type=ModContainer]",
		"name_selector": "td[data-type=DisplayName]",
		"link_selector": "a[data-type=Link]"
	}`)

	s, err := LoadStrategyFile(path)
	if err != nil {
		t.Fatalf("LoadStrategyFile: %v", err)
	}

	e := s.Extractor()
	if e.ListSelector != DefaultListSelector {
		t.Fatalf("list selector: got %q", e.ListSelector)
	}
	if e.RowSelector != "tr[data-type=ModContainer]" {
		t.Fatalf("row selector: got %q", e.RowSelector)
	}

	got, err := e.ExtractHTML(readFixture(t, "launcher_preset.html"))
	if err != nil {
		t.Fatalf("ExtractHTML: %v", err)
	}
	if !strings.HasPrefix(got, "@cbaa:450814997\n") {
		t.Fatalf("unexpected preset %q", got)
	}
}

func TestLoadStrategyFile_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad_json", body: `{`, want: "parse strategy json"},
		{name: "no_name_selector", body: `{"link_selector":"a"}`, want: "no name_selector"},
		{name: "no_link_selector", body: `{"name_selector":"td"}`, want: "no link_selector"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadStrategyFile(writeStrategy(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}

	if _, err := LoadStrategyFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
