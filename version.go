// Package wires holds build metadata shared by the wires command and its
// internal packages.
package wires

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionRaw string

// Version returns the embedded version string, or "dev" when VERSION is empty.
func Version() string {
	if v := strings.TrimSpace(versionRaw); v != "" {
		return v
	}
	return "dev"
}
