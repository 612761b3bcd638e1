package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pborges/wires"
	"github.com/pborges/wires/internal/circuit"
	"github.com/pborges/wires/internal/config"
	"github.com/pborges/wires/internal/logging"
	"github.com/pborges/wires/internal/netlist"
	"github.com/pborges/wires/internal/report"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// usageError marks bad invocations; they exit with status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string

	cfg    *config.Config
	logger hclog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "wires",
		Short: "Evaluate 16-bit wire circuits",
		Long: `wires evaluates netlists of named 16-bit wires. Each wire is driven by a
literal, another wire, or a bitwise gate (AND, OR, NOT, LSHIFT, RSHIFT).
Values are computed on demand and cached until the circuit is invalidated.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q", args[0])}
			}
			_ = cmd.Usage()
			return usageError{errors.New("missing command")}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Path to a config file (default: search $WIRES_CONFIG, ./wires.yaml, ~/.config/wires)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		a.newEvalCmd(),
		a.newOverrideCmd(),
		a.newExplainCmd(),
		a.newFmtCmd(),
		a.newWatchCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.configPath != "" {
		cfg, path, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger, err := logging.New(level, a.errOut)
	if err != nil {
		return usageError{err}
	}
	a.logger = logger
	if path != "" {
		a.logger.Debug("loaded config", "path", path)
	}
	return nil
}

// load reads a netlist and builds its circuit. Malformed lines abort the
// command; all of them are reported together.
func (a *app) load(path string) (*circuit.Circuit, []netlist.Rule, error) {
	rules, err := netlist.Load(path)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("loaded netlist", "path", path, "rules", len(rules))
	return netlist.Build(rules, circuit.WithLogger(a.logger)), rules, nil
}

// radix picks the flag value over the config value.
func (a *app) radix(flag string) (report.Radix, error) {
	if flag == "" {
		flag = a.cfg.Radix
	}
	r, err := report.ParseRadix(flag)
	if err != nil {
		return "", usageError{err}
	}
	return r, nil
}

func headerLines(path string) []string {
	return []string{
		fmt.Sprintf("wires    %s", wires.Version()),
		fmt.Sprintf("netlist  %s", path),
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), wires.Version())
			return nil
		},
	}
}
