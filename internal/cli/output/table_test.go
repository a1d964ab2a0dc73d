package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"Year", "Photos"}, [][]string{
		{"2021", "320"},
		{"2022", "187"},
	})

	out := buf.String()
	for _, want := range []string{"YEAR", "PHOTOS", "2021", "320", "2022", "187"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
