package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pborges/wires/internal/netlist"
)

func (a *app) newFmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a netlist in canonical text form",
		Long: `Print a netlist with one rule per line, sorted by wire name, with
whitespace normalized. When a wire is defined more than once only the last
definition is kept. YAML netlists are converted to the text format.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			_, rules, err := a.load(path)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := netlist.Write(&buf, netlist.Canonical(rules)); err != nil {
				return err
			}
			if !write {
				_, err := a.out.Write(buf.Bytes())
				return err
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml":
				return usageError{errors.New("-w only supports text netlists")}
			}
			a.logger.Info("rewriting netlist", "path", path)
			return os.WriteFile(path, buf.Bytes(), 0644)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to FILE")
	return cmd
}
