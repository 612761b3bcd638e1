package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pborges/wires/internal/report"
	"github.com/pborges/wires/internal/watch"
)

func (a *app) newWatchCmd() *cobra.Command {
	var (
		wiresFlag []string
		radix     string
	)
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-evaluate a netlist every time it changes",
		Long: `Evaluate the target wire (or every --wire given) and print the result,
then do it again each time FILE is saved. Errors in the netlist are printed
and watching continues. Stop with Ctrl-C.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rdx, err := a.radix(radix)
			if err != nil {
				return err
			}
			names := wiresFlag
			if len(names) == 0 {
				names = []string{a.cfg.Target}
			}
			path := args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			run := func() {
				if err := a.evalOnce(path, names, rdx); err != nil {
					fmt.Fprintln(a.errOut, "error:", err)
				}
			}
			run()

			w := watch.New(path, run, a.logger).WithDebounce(a.cfg.Watch.Debounce.Duration())
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&wiresFlag, "wire", nil, "Wire to print (repeatable, default from config)")
	cmd.Flags().StringVar(&radix, "radix", "", "Output radix: dec, hex or bin")
	return cmd
}

func (a *app) evalOnce(path string, names []string, rdx report.Radix) error {
	c, _, err := a.load(path)
	if err != nil {
		return err
	}
	results, err := resolveAll(c, names)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.out, report.Make(report.Config{Radix: rdx, Header: headerLines(path)}, results))
	return err
}
