package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pborges/wires/internal/circuit"
	"github.com/pborges/wires/internal/report"
)

func (a *app) newOverrideCmd() *cobra.Command {
	var (
		target string
		wire   string
		radix  string
	)
	cmd := &cobra.Command{
		Use:   "override FILE",
		Short: "Evaluate a wire, feed the result back into another wire, and evaluate again",
		Long: `Resolve the target wire, clear every cached value, force the override
wire to that first result, and resolve the target again. Both values are
printed.`,
		Example: `  wires override circuit.txt
  wires override circuit.txt --target a --wire b`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				target = a.cfg.Target
			}
			if wire == "" {
				wire = a.cfg.Override
			}
			rdx, err := a.radix(radix)
			if err != nil {
				return err
			}
			c, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			if !c.Has(wire) {
				a.logger.Warn("override wire is not defined, second pass will match the first", "wire", wire)
			}
			first, second, err := override(c, target, wire)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, report.Make(report.Config{
				Radix:  rdx,
				Header: headerLines(args[0]),
			}, []report.Result{
				{Name: target, Value: first, Note: "initial"},
				{Name: target, Value: second, Note: fmt.Sprintf("%s forced to %d", wire, first)},
			}))
			return err
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "Wire to evaluate (default from config, a)")
	cmd.Flags().StringVar(&wire, "wire", "", "Wire to override (default from config, b)")
	cmd.Flags().StringVar(&radix, "radix", "", "Output radix: dec, hex or bin")
	return cmd
}

// override runs the two evaluation passes. The circuit is left with wire
// forced and target cached from the second pass.
func override(c *circuit.Circuit, target, wire string) (first, second uint16, err error) {
	first, err = c.Resolve(target)
	if err != nil {
		return 0, 0, err
	}
	c.InvalidateAll()
	c.Force(wire, first)
	second, err = c.Resolve(target)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}
