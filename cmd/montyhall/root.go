package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MJE43/monty-hall-sim/internal/config"
	"github.com/MJE43/monty-hall-sim/internal/games"
	"github.com/MJE43/monty-hall-sim/internal/logging"
)

// app carries what every command shares.
type app struct {
	cfg    config.Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *log.Logger

	doors    int
	logLevel string
}

func newRootCmd(a *app) *cobra.Command {
	opts := newSimulateOptions(a.cfg)

	root := &cobra.Command{
		Use:   "montyhall",
		Short: "Monty Hall problem simulator",
		Long: "Simulates the Monty Hall problem for any number of doors and compares\n" +
			"the switch and stay strategies against their theoretical win rates.",
		Example: "  montyhall -s 10000 -d 3        # command-line simulation\n" +
			"  montyhall -s 50000 -d 10 -q    # quiet output for scripting\n" +
			"  montyhall -s 100000 -f json    # JSON report\n" +
			"  montyhall play -d 4            # play interactively",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.errOut, a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return games.ValidateDoors(a.doors)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.simulate(cmd.Context(), opts)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().IntVarP(&a.doors, "doors", "d", a.cfg.Doors, "number of doors (minimum 3)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn, error")
	opts.bind(root.Flags())

	root.AddCommand(newSimulateCmd(a), newPlayCmd(a), newReplayCmd(a))
	return root
}
