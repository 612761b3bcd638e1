package testutil

import (
	"strings"
	"testing"
)

func TestParseReport(t *testing.T) {
	r, err := ParseReport([]byte(`# header
a  = 11107  # initial
b  = 0x10

c = 0b101
`))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(r.Order, ","); got != "a,b,c" {
		t.Errorf("order = %s", got)
	}
	if r.Values["a"] != 11107 || r.Values["b"] != 16 || r.Values["c"] != 5 {
		t.Errorf("values = %v", r.Values)
	}
	if r.Notes["a"] != "initial" {
		t.Errorf("notes = %v", r.Notes)
	}
}

func TestParseReportErrors(t *testing.T) {
	for _, src := range []string{"a 1\n", "a = 70000\n", "a = x\n"} {
		if _, err := ParseReport([]byte(src)); err == nil {
			t.Errorf("ParseReport(%q): expected error", src)
		}
	}
}

func TestCompareReport(t *testing.T) {
	want, _ := ParseReport([]byte("a = 1\nb = 2\n"))
	same, _ := ParseReport([]byte("b = 0x2\na = 1  # note\n"))
	if diff := CompareReport(same, want); diff != "" {
		t.Errorf("unexpected diff:\n%s", diff)
	}
	other, _ := ParseReport([]byte("a = 1\nb = 3\n"))
	if diff := CompareReport(other, want); !strings.Contains(diff, "report mismatch") {
		t.Errorf("expected mismatch, got %q", diff)
	}
}
