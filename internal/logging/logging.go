// Package logging builds the hclog logger shared by the wires command.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger named "wires" writing to w. Unknown level names are
// an error rather than a silent fallback.
func New(level string, w io.Writer) (hclog.Logger, error) {
	lvl := hclog.LevelFromString(strings.TrimSpace(level))
	if lvl == hclog.NoLevel {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "wires",
		Level:  lvl,
		Output: w,
		Color:  hclog.AutoColor,
	}), nil
}
