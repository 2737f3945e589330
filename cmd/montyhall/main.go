package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/MJE43/monty-hall-sim/internal/config"
	"github.com/MJE43/monty-hall-sim/internal/sim"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("montyhall: %v", err)
	}

	a := &app{cfg: cfg, in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if errors.Is(err, sim.ErrInterrupted) || errors.Is(err, context.Canceled) {
			config.ExitCodef(config.ExitInterrupted, "montyhall: %v", err)
		}
		config.Exitf("montyhall: %v", err)
	}
}
