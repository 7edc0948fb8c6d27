package preset

import (
	"bytes"
	"errors"
	"testing"
)

// TestDebugPrintRows verifies every row is reported, including malformed
// ones, without aborting.
func TestDebugPrintRows(t *testing.T) {
	t.Parallel()

	html := `<div class="mod-list"><table>
<tr>
<td>Alpha</td>
<td><span>s</span></td>
<td><a href="https://h/?id=100">l</a></td>
</tr>
<tr>
<td>Beta</td>
</tr>
</table></div>`

	var out bytes.Buffer
	if err := DebugPrintRows(&out, html, NewExtractor(nil)); err != nil {
		t.Fatalf("DebugPrintRows: %v", err)
	}

	want := "2 rows\n" +
		"0\talpha\t100\n" +
		"1\tMALFORMED\tmissing link child at index 3 (row has 1 child nodes)\n"
	if out.String() != want {
		t.Fatalf("unexpected output\nwant %q\ngot  %q", want, out.String())
	}
}

func TestDebugPrintRows_MissingList(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := DebugPrintRows(&out, `<p>x</p>`, NewExtractor(nil))
	if !errors.Is(err, ErrMissingModList) {
		t.Fatalf("expected ErrMissingModList, got %v", err)
	}
}
