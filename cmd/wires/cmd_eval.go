package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pborges/wires/internal/circuit"
	"github.com/pborges/wires/internal/report"
)

func (a *app) newEvalCmd() *cobra.Command {
	var (
		forces []string
		radix  string
	)
	cmd := &cobra.Command{
		Use:   "eval FILE [WIRE...]",
		Short: "Print the values of wires in a netlist",
		Long: `Evaluate a netlist and print one "name = value" line per wire.
With no WIRE arguments every defined wire is printed, sorted by name.
Wires that are referenced but never defined evaluate to 0.`,
		Example: `  wires eval circuit.txt a
  wires eval circuit.txt --force b=3176 --radix hex`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rdx, err := a.radix(radix)
			if err != nil {
				return err
			}
			forced, err := parseForces(forces)
			if err != nil {
				return err
			}
			c, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			a.applyForces(c, forced)
			names := args[1:]
			if len(names) == 0 {
				names = c.Names()
			}
			results, err := resolveAll(c, names)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, report.Make(report.Config{
				Radix:  rdx,
				Header: headerLines(args[0]),
			}, results))
			return err
		},
	}
	cmd.Flags().StringArrayVar(&forces, "force", nil,
		"Force WIRE=VALUE before evaluating (repeatable)")
	cmd.Flags().StringVar(&radix, "radix", "",
		"Output radix: dec, hex or bin (default from config)")
	return cmd
}

// parseForce splits "name=value". Values accept 0x and 0b prefixes.
func parseForce(s string) (string, uint16, error) {
	name, val, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, usageError{fmt.Errorf("invalid --force %q: expected WIRE=VALUE", s)}
	}
	v, err := strconv.ParseUint(strings.TrimSpace(val), 0, 16)
	if err != nil {
		return "", 0, usageError{fmt.Errorf("invalid --force %q: %w", s, err)}
	}
	return name, uint16(v), nil
}

type forcedValue struct {
	name  string
	value uint16
}

func parseForces(specs []string) ([]forcedValue, error) {
	out := make([]forcedValue, 0, len(specs))
	for _, s := range specs {
		name, v, err := parseForce(s)
		if err != nil {
			return nil, err
		}
		out = append(out, forcedValue{name: name, value: v})
	}
	return out, nil
}

func (a *app) applyForces(c *circuit.Circuit, forced []forcedValue) {
	for _, f := range forced {
		if !c.Has(f.name) {
			a.logger.Warn("ignoring force of undefined wire", "wire", f.name)
			continue
		}
		c.Force(f.name, f.value)
	}
}

func resolveAll(c *circuit.Circuit, names []string) ([]report.Result, error) {
	results := make([]report.Result, 0, len(names))
	for _, name := range names {
		v, err := c.Resolve(name)
		if err != nil {
			return nil, err
		}
		r := report.Result{Name: name, Value: v}
		if info, ok := c.Lookup(name); !ok {
			r.Note = "undefined"
		} else if info.Forced {
			r.Note = "forced"
		}
		results = append(results, r)
	}
	return results, nil
}
