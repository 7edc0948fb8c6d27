//go:build e2e

package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
)

// TestE2E_RealExports runs the command against real launcher exports.
//
// Every file must produce at least one preset line and every line must match
// the preset grammar with a numeric id.
//
// Run:
//
//	E2E=1 E2E_PRESET_PATHS="./exports/a.html,./exports/b.html" go test -tags=e2e ./cmd/modpreset
func TestE2E_RealExports(t *testing.T) {
	if os.Getenv("E2E") != "1" {
		t.Skip("set E2E=1 to enable E2E tests against real exports")
	}

	raw := strings.TrimSpace(os.Getenv("E2E_PRESET_PATHS"))
	if raw == "" {
		t.Skip("set E2E_PRESET_PATHS to comma-separated .html exports")
	}

	line := regexp.MustCompile(`^@[a-z]*:[0-9]+$`)

	for _, path := range strings.Split(raw, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}

		var stdout, stderr bytes.Buffer
		code := run(
			context.Background(),
			[]string{"-file", path},
			nil,
			&stdout,
			&stderr,
			&http.Client{Timeout: 10 * time.Second},
			nil,
		)
		if code != 0 {
			t.Fatalf("%s: run returned %d; stderr=%s", path, code, stderr.String())
		}

		lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
		if len(lines) == 0 || lines[0] == "" {
			t.Fatalf("%s: no preset lines", path)
		}
		for i, l := range lines {
			if !line.MatchString(l) {
				t.Fatalf("%s: line %d %q does not match %s", path, i, l, line)
			}
		}
		t.Logf("%s: %d mods", path, len(lines))
	}
}
