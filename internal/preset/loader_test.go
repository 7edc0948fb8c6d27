package preset

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestLoader_Stdin verifies stdin input is read and returned as string.
func TestLoader_Stdin(t *testing.T) {
	t.Parallel()

	l := NewLoader(http.DefaultClient, 1*time.Second)
	html, err := l.Load(context.Background(), Input{
		Stdin: bytes.NewBufferString("<p>x</p>"),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if html != "<p>x</p>" {
		t.Fatalf("unexpected html: %q", html)
	}
}

// TestLoader_NilStdin verifies a missing stdin reads as an empty document.
func TestLoader_NilStdin(t *testing.T) {
	t.Parallel()

	html, err := NewLoader(nil, time.Second).Load(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if html != "" {
		t.Fatalf("expected empty html, got %q", html)
	}
}

// TestLoader_File verifies .html files are read from disk.
func TestLoader_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preset.html")
	if err := os.WriteFile(path, []byte("<p>file</p>"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	html, err := NewLoader(nil, time.Second).Load(context.Background(), Input{Path: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if html != "<p>file</p>" {
		t.Fatalf("unexpected html: %q", html)
	}
}

// TestLoader_FileWrongKind verifies the extension gate runs before any read.
func TestLoader_FileWrongKind(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"preset.txt", "preset.HTML", "preset.htm", "preset"} {
		_, err := NewLoader(nil, time.Second).Load(context.Background(), Input{Path: filepath.Join(t.TempDir(), name)})
		var wk *WrongInputKindError
		if !errors.As(err, &wk) {
			t.Fatalf("%s: expected *WrongInputKindError, got %v", name, err)
		}
	}
}

// TestLoader_URL verifies URL fetching and the User-Agent header.
func TestLoader_URL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "modpreset/1.0" {
			http.Error(w, "bad ua "+ua, http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("<p>remote</p>"))
	}))
	t.Cleanup(srv.Close)

	html, err := NewLoader(srv.Client(), 2*time.Second).Load(context.Background(), Input{URL: srv.URL})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if html != "<p>remote</p>" {
		t.Fatalf("unexpected html: %q", html)
	}
}

// TestLoader_URL_Non2xx verifies we include status code and a body snippet.
func TestLoader_URL_Non2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(&http.Client{Timeout: 2 * time.Second}, 2*time.Second)
	_, err := l.Load(context.Background(), Input{URL: srv.URL})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "http status 403") || !strings.Contains(msg, "nope") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestLoader_Charset verifies single-byte exports are decoded to UTF-8.
func TestLoader_Charset(t *testing.T) {
	t.Parallel()

	// "Café" in windows-1252.
	raw := []byte{'C', 'a', 'f', 0xE9}
	html, err := NewLoader(nil, time.Second).Load(context.Background(), Input{
		Stdin:   bytes.NewReader(raw),
		Charset: "windows-1252",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if html != "Café" {
		t.Fatalf("unexpected html: %q", html)
	}

	_, err = NewLoader(nil, time.Second).Load(context.Background(), Input{
		Stdin:   bytes.NewReader(raw),
		Charset: "no-such-charset",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown charset") {
		t.Fatalf("expected unknown charset error, got %v", err)
	}
}
