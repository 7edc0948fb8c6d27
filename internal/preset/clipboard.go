package preset

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// ClipboardWriter delivers preset text somewhere the user can paste it from.
type ClipboardWriter interface {
	WriteText(text string) error
}

// SystemClipboard writes to the host clipboard (xclip/xsel/wl-copy on Linux,
// pbcopy on macOS, the Win32 API on Windows).
type SystemClipboard struct{}

// Available reports whether a clipboard backend was found on this host.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// WriteText implements ClipboardWriter.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// WriterClipboard writes the text to W unchanged.
type WriterClipboard struct {
	W io.Writer
}

// WriteText implements ClipboardWriter.
func (c WriterClipboard) WriteText(text string) error {
	_, err := io.WriteString(c.W, text)
	return err
}

var (
	_ ClipboardWriter = SystemClipboard{}
	_ ClipboardWriter = WriterClipboard{}
)
