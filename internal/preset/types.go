package preset

import (
	"errors"
	"fmt"
	"strings"
)

// IDPrefixLen is the number of characters dropped from the tail of a mod link
// (the part after the last '/') to obtain the numeric id. Launcher exports use
// links like ".../filedetails/?id=450814997", so the dropped prefix is "?id=".
const IDPrefixLen = 4

// ModEntry is one extracted mod.
type ModEntry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Preset is the ordered list of mods extracted from one document.
type Preset []ModEntry

// String renders the preset as one "@name:id" line per mod. Every line,
// including the last, ends with '\n'. An empty preset renders as "".
func (p Preset) String() string {
	var b strings.Builder
	for _, m := range p {
		b.WriteString("@")
		b.WriteString(m.Name)
		b.WriteString(":")
		b.WriteString(m.ID)
		b.WriteString("\n")
	}
	return b.String()
}

// ErrMissingModList is returned when the document has no mod-list element.
var ErrMissingModList = errors.New("no mod-list element found")

// MalformedRowError reports a row that does not have the expected structure.
// Row is zero-based, in document order.
type MalformedRowError struct {
	Row    int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d is malformed: %s", e.Row, e.Reason)
}

// WrongInputKindError is returned by loaders when the input is not an HTML
// document (checked by file extension).
type WrongInputKindError struct {
	Name string
}

func (e *WrongInputKindError) Error() string {
	return fmt.Sprintf("wrong filetype: %q is not an .html file", e.Name)
}

// UserMessage maps an extraction or loading error to the short message shown
// to end users. Unknown errors fall back to err.Error().
func UserMessage(err error) string {
	var kind *WrongInputKindError
	var row *MalformedRowError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &kind):
		return "Wrong filetype!"
	case errors.Is(err, ErrMissingModList):
		return "No mod list found in the file."
	case errors.As(err, &row):
		return fmt.Sprintf("Mod list row %d could not be read.", row.Row)
	default:
		return err.Error()
	}
}
