package testutil

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Report is a parsed value report. Order keeps the wires as they appeared.
type Report struct {
	Order  []string
	Values map[string]uint16
	Notes  map[string]string
}

// ParseReport reads the output of report.Make in any radix.
func ParseReport(data []byte) (Report, error) {
	r := Report{
		Values: make(map[string]uint16),
		Notes:  make(map[string]string),
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		note := ""
		if idx := strings.Index(s, "#"); idx >= 0 {
			note = strings.TrimSpace(s[idx+1:])
			s = strings.TrimSpace(s[:idx])
		}
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			return r, fmt.Errorf("line %d: expected name = value", line)
		}
		name = strings.TrimSpace(name)
		v, err := strconv.ParseUint(strings.TrimSpace(val), 0, 16)
		if err != nil {
			return r, fmt.Errorf("line %d: %w", line, err)
		}
		if _, dup := r.Values[name]; !dup {
			r.Order = append(r.Order, name)
		}
		r.Values[name] = uint16(v)
		if note != "" {
			r.Notes[name] = note
		}
	}
	return r, scanner.Err()
}

// CompareReport returns a human readable diff of the values, or "" when
// they match. Order and notes are ignored.
func CompareReport(got, want Report) string {
	if diff := cmp.Diff(want.Values, got.Values); diff != "" {
		return fmt.Sprintf("report mismatch (-want +got):\n%s", diff)
	}
	return ""
}
