// Package netlist reads and writes wire definitions.
//
// The text format holds one rule per line:
//
//	123 -> x
//	x AND y -> d
//	NOT x -> h
//
// Blank lines and lines starting with '#' are skipped. The YAML format maps
// wire names to rule text under a top-level "wires" key.
package netlist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/pborges/wires/internal/circuit"
)

// Rule is one parsed wire definition and where it came from.
type Rule struct {
	Line int
	Name string
	Text string
	Spec circuit.NodeSpec
}

// Load reads a netlist file, choosing the format by extension.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read netlist: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse reads the text format. Every malformed line is reported, not just
// the first; the rules that did parse are returned alongside the error.
func Parse(src []byte) ([]Rule, error) {
	var rules []Rule
	var errs *multierror.Error
	for i, raw := range strings.Split(string(src), "\n") {
		s := strings.TrimSpace(raw)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		r, err := parseLine(s, i+1)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		rules = append(rules, r)
	}
	return rules, errs.ErrorOrNil()
}

func parseLine(s string, line int) (Rule, error) {
	parts := strings.Split(s, "->")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("line %d: %w: expected \"<rule> -> <wire>\"", line, circuit.ErrInvalidInput)
	}
	text := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if err := checkName(name); err != nil {
		return Rule{}, fmt.Errorf("line %d: %w", line, err)
	}
	spec, err := circuit.ParseRule(text)
	if err != nil {
		return Rule{}, fmt.Errorf("line %d: wire %q: %w", line, name, err)
	}
	return Rule{Line: line, Name: name, Text: text, Spec: spec}, nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("%w: invalid wire name %q", circuit.ErrInvalidInput, name)
	}
	return nil
}

type netlistYAML struct {
	Version int                  `yaml:"version"`
	Wires   map[string]yaml.Node `yaml:"wires"`
}

// ParseYAML reads the YAML format:
//
//	version: 1
//	wires:
//	  x: 123
//	  d: x AND y
//
// Rules come back sorted by wire name.
func ParseYAML(src []byte) ([]Rule, error) {
	var doc netlistYAML
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Version > 1 {
		return nil, fmt.Errorf("%w: unsupported netlist version %d", circuit.ErrInvalidInput, doc.Version)
	}

	names := make([]string, 0, len(doc.Wires))
	for name := range doc.Wires {
		names = append(names, name)
	}
	sort.Strings(names)

	var rules []Rule
	var errs *multierror.Error
	for _, name := range names {
		n := doc.Wires[name]
		if n.Kind != yaml.ScalarNode {
			errs = multierror.Append(errs, fmt.Errorf("line %d: wire %q: %w: rule must be a scalar", n.Line, name, circuit.ErrInvalidInput))
			continue
		}
		if err := checkName(name); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w", n.Line, err))
			continue
		}
		spec, err := circuit.ParseRule(n.Value)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d: wire %q: %w", n.Line, name, err))
			continue
		}
		rules = append(rules, Rule{Line: n.Line, Name: name, Text: strings.TrimSpace(n.Value), Spec: spec})
	}
	return rules, errs.ErrorOrNil()
}

// Build registers rules into a new circuit. A later rule for the same wire
// replaces an earlier one.
func Build(rules []Rule, opts ...circuit.Option) *circuit.Circuit {
	c := circuit.New(opts...)
	for _, r := range rules {
		c.Add(r.Name, r.Spec)
	}
	return c
}

// Canonical drops shadowed definitions and sorts the rest by wire name.
func Canonical(rules []Rule) []Rule {
	last := make(map[string]Rule, len(rules))
	for _, r := range rules {
		last[r.Name] = r
	}
	out := make([]Rule, 0, len(last))
	for _, r := range last {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Write prints rules in the text format, normalizing whitespace.
func Write(w io.Writer, rules []Rule) error {
	for _, r := range rules {
		if _, err := fmt.Fprintf(w, "%s -> %s\n", r.Spec, r.Name); err != nil {
			return err
		}
	}
	return nil
}
