package preset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirResult is one element of the JSON array written by StreamFromDir.
type DirResult struct {
	SourceFile string     `json:"source_file"`
	Preset     string     `json:"preset,omitempty"`
	Mods       []ModEntry `json:"mods,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// StreamFromDir streams a single JSON array to w, emitting one object per
// .html file in dir.
//
// Behavior:
//   - stable ordering by filename
//   - files without the .html extension and subdirectories are ignored
//   - unreadable or malformed files are reported in the "error" field and do
//     not stop the run
func StreamFromDir(w io.Writer, dir string, e *Extractor, enc *json.Encoder) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	if _, err := io.WriteString(w, "["); err != nil {
		return fmt.Errorf("write [: %w", err)
	}

	first := true
	for _, ent := range entries {
		if ent.IsDir() || CheckKind(ent.Name()) != nil {
			continue
		}

		res := DirResult{SourceFile: ent.Name()}
		b, err := os.ReadFile(filepath.Join(dir, ent.Name()))
		if err != nil {
			res.Error = err.Error()
		} else if p, err := e.Extract(strings.NewReader(string(b))); err != nil {
			res.Error = err.Error()
		} else {
			res.Preset = p.String()
			res.Mods = p
		}

		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return fmt.Errorf("write comma: %w", err)
			}
		}
		first = false
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}

	if _, err := io.WriteString(w, "]"); err != nil {
		return fmt.Errorf("write ]: %w", err)
	}
	return nil
}
