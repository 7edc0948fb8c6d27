package preset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
)

// Input describes where HTML should come from. Path wins over URL, URL wins
// over Stdin.
type Input struct {
	// Path is a local file; it must have the ".html" extension.
	Path string

	// URL, if provided, is fetched via HTTP GET.
	URL string

	// Stdin is used when Path and URL are empty. If nil, stdin reads as empty.
	Stdin io.Reader

	// Charset is the document encoding (any WHATWG label, e.g.
	// "windows-1252"). Empty or "utf-8" means no decoding.
	Charset string
}

// Loader fetches or reads HTML with a consistent timeout policy.
type Loader struct {
	client  *http.Client
	timeout time.Duration
}

// NewLoader creates a Loader. If client is nil, http.DefaultClient is used.
func NewLoader(client *http.Client, timeout time.Duration) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		client:  client,
		timeout: timeout,
	}
}

// CheckKind returns a *WrongInputKindError unless name ends in ".html".
// The comparison is case-sensitive.
func CheckKind(name string) error {
	if filepath.Ext(name) != ".html" {
		return &WrongInputKindError{Name: name}
	}
	return nil
}

// Load returns the HTML source for the given input, decoded to UTF-8.
//
// On non-2xx HTTP responses, Load returns an error that includes the status
// code and up to 4KB of the response body for debugging.
func (l *Loader) Load(ctx context.Context, input Input) (string, error) {
	b, err := l.loadRaw(ctx, input)
	if err != nil {
		return "", err
	}
	return decodeCharset(b, input.Charset)
}

func (l *Loader) loadRaw(ctx context.Context, input Input) ([]byte, error) {
	if p := strings.TrimSpace(input.Path); p != "" {
		if err := CheckKind(p); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return b, nil
	}

	if strings.TrimSpace(input.URL) == "" {
		if input.Stdin == nil {
			return nil, nil
		}
		b, err := io.ReadAll(input.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", "modpreset/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

// decodeCharset converts b from the named charset to a UTF-8 string.
func decodeCharset(b []byte, charset string) (string, error) {
	charset = strings.TrimSpace(charset)
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8") {
		return string(b), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", charset, err)
	}
	return string(out), nil
}
