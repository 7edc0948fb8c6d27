package preset

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// DebugPrintRows prints what the extractor sees for every row of the mod list:
// the parsed name and id, or why the row is malformed. Unlike ExtractPreset it
// keeps going after a bad row. This is used by the command's "-debug-rows"
// mode.
func DebugPrintRows(w io.Writer, html string, e *Extractor) error {
	doc, err := e.parser().Parse(strings.NewReader(html))
	if err != nil {
		return err
	}

	list := doc.Find(orDefault(e.ListSelector, DefaultListSelector)).First()
	if list.Length() == 0 {
		return ErrMissingModList
	}

	rows := list.Find(orDefault(e.RowSelector, DefaultRowSelector))
	fmt.Fprintf(w, "%d rows\n", rows.Length())

	rp := e.rowParser()
	for i := 0; i < rows.Length(); i++ {
		m, err := rp.ParseRow(i, rows.Eq(i))
		var mr *MalformedRowError
		switch {
		case errors.As(err, &mr):
			fmt.Fprintf(w, "%d\tMALFORMED\t%s\n", i, mr.Reason)
		case err != nil:
			fmt.Fprintf(w, "%d\tERROR\t%v\n", i, err)
		default:
			fmt.Fprintf(w, "%d\t%s\t%s\n", i, m.Name, m.ID)
		}
	}
	return nil
}
