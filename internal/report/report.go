package report

import (
	"fmt"
	"strings"
)

type Radix string

const (
	RadixDec Radix = "dec"
	RadixHex Radix = "hex"
	RadixBin Radix = "bin"
)

func ParseRadix(s string) (Radix, error) {
	switch Radix(strings.ToLower(strings.TrimSpace(s))) {
	case "", RadixDec:
		return RadixDec, nil
	case RadixHex:
		return RadixHex, nil
	case RadixBin:
		return RadixBin, nil
	default:
		return "", fmt.Errorf("unsupported radix: %s", s)
	}
}

type Config struct {
	Radix  Radix
	Header []string
}

type Result struct {
	Name  string
	Value uint16
	// Note is appended as a trailing comment, e.g. "forced".
	Note string
}

// Make renders results one per line, in the order given.
func Make(cfg Config, results []Result) string {
	var buf strings.Builder
	for _, line := range cfg.Header {
		for _, l := range strings.Split(strings.TrimRight(line, "\n"), "\n") {
			buf.WriteString("# ")
			buf.WriteString(l)
			buf.WriteByte('\n')
		}
	}
	width := 0
	for _, r := range results {
		if len(r.Name) > width {
			width = len(r.Name)
		}
	}
	for _, r := range results {
		fmt.Fprintf(&buf, "%-*s = %s", width, r.Name, FormatValue(cfg.Radix, r.Value))
		if r.Note != "" {
			fmt.Fprintf(&buf, "  # %s", r.Note)
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func FormatValue(radix Radix, v uint16) string {
	switch radix {
	case RadixHex:
		return fmt.Sprintf("0x%04x", v)
	case RadixBin:
		return fmt.Sprintf("0b%016b", v)
	default:
		return fmt.Sprintf("%d", v)
	}
}
