package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MJE43/monty-hall-sim/internal/config"
	"github.com/MJE43/monty-hall-sim/internal/engine"
	"github.com/MJE43/monty-hall-sim/internal/logging"
	"github.com/MJE43/monty-hall-sim/internal/report"
	"github.com/MJE43/monty-hall-sim/internal/sim"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type simulateOptions struct {
	games        int
	quiet        bool
	format       string
	distribution bool
	workers      int
	rng          string
	seed         uint64
	serverSeed   string
	clientSeed   string
	timeout      time.Duration
}

func newSimulateOptions(cfg config.Config) *simulateOptions {
	return &simulateOptions{
		games:      cfg.Simulations,
		format:     cfg.Format,
		workers:    cfg.Workers,
		rng:        cfg.RNG,
		seed:       cfg.Seed,
		serverSeed: cfg.ServerSeed,
		clientSeed: cfg.ClientSeed,
	}
}

func (o *simulateOptions) bind(fs *pflag.FlagSet) {
	fs.IntVarP(&o.games, "simulate", "s", o.games, "number of games to simulate")
	fs.BoolVarP(&o.quiet, "quiet", "q", o.quiet, "quiet output for scripting")
	fs.StringVarP(&o.format, "format", "f", o.format, "output format: text or json")
	fs.BoolVar(&o.distribution, "distribution", o.distribution, "include the per-door distribution")
	fs.IntVar(&o.workers, "workers", o.workers, "worker goroutines (0 = one per CPU)")
	fs.StringVar(&o.rng, "rng", o.rng, "randomness: pcg or fair")
	fs.Uint64Var(&o.seed, "seed", o.seed, "PCG seed (0 = random)")
	fs.StringVar(&o.serverSeed, "server-seed", o.serverSeed, "server seed for --rng fair")
	fs.StringVar(&o.clientSeed, "client-seed", o.clientSeed, "client seed for --rng fair")
	fs.DurationVar(&o.timeout, "timeout", o.timeout, "stop after this long and report completed games")
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := newSimulateOptions(a.cfg)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a batch simulation and print the statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.simulate(cmd.Context(), opts)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

func (a *app) simulate(ctx context.Context, o *simulateOptions) error {
	if o.format != formatText && o.format != formatJSON {
		return fmt.Errorf("%w: unknown format %q", sim.ErrInvalidConfiguration, o.format)
	}

	req := sim.Request{
		Doors:     a.doors,
		Rounds:    o.games,
		Mode:      sim.Mode(o.rng),
		Seed:      o.seed,
		TimeoutMs: int(o.timeout.Milliseconds()),
	}
	switch req.Mode {
	case sim.ModeProvablyFair:
		if o.serverSeed == "" {
			return fmt.Errorf("%w: --server-seed is required with --rng fair", sim.ErrInvalidConfiguration)
		}
		req.Seeds = engine.Seeds{Server: o.serverSeed, Client: o.clientSeed}
	case sim.ModePCG:
		if req.Seed == 0 {
			req.Seed = rand.Uint64()
			a.logger.Info("generated seed", "seed", req.Seed)
		}
	}

	var p *progress
	if !o.quiet && logging.IsTerminal(a.errOut) {
		p = &progress{a: a}
		req.OnProgress = p.update
	}

	simulator := sim.NewSimulator(sim.WithWorkers(o.workers), sim.WithLogger(a.logger))
	a.logger.Debug("simulator ready", "workers", simulator.Workers(), "mode", req.Mode)
	res, err := simulator.Run(ctx, req)
	if p != nil {
		p.done()
	}
	if res == nil {
		return err
	}

	if o.format == formatJSON {
		if werr := report.WriteJSON(a.out, report.NewDocument(res.RunID, res.Statistics, o.distribution)); werr != nil {
			return werr
		}
		return err
	}
	if werr := report.WriteText(a.out, res.Statistics, report.TextOptions{Quiet: o.quiet, Distribution: o.distribution}); werr != nil {
		return werr
	}
	return err
}

// progress prints a status line to a terminal, at most once per percent.
type progress struct {
	a       *app
	last    int64
	printed bool
}

func (p *progress) update(done, total int64) {
	pct := done * 100 / total
	if p.printed && pct == p.last {
		return
	}
	p.last = pct
	p.printed = true
	fmt.Fprintf(p.a.errOut, "\rCompleted %s / %s games...", humanize.Comma(done), humanize.Comma(total))
}

func (p *progress) done() {
	if p.printed {
		fmt.Fprintln(p.a.errOut)
	}
}
