package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pborges/wires/internal/explain"
)

func (a *app) newExplainCmd() *cobra.Command {
	var (
		depth  int
		forces []string
	)
	cmd := &cobra.Command{
		Use:   "explain FILE WIRE",
		Short: "Show how a wire's value is derived",
		Example: `  wires explain circuit.txt a
  wires explain circuit.txt a --depth 2`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if depth < 0 {
				return usageError{fmt.Errorf("invalid --depth %d", depth)}
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
			tree, err := explain.Tree(c, args[1], explain.Options{MaxDepth: depth})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, tree)
			return err
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Maximum depth to expand (0 = unlimited)")
	cmd.Flags().StringArrayVar(&forces, "force", nil, "Force WIRE=VALUE before evaluating (repeatable)")
	return cmd
}
