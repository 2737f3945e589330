package sim

import (
	"errors"

	"github.com/MJE43/monty-hall-sim/internal/games"
)

var (
	// ErrInvalidConfiguration is games.ErrInvalidConfiguration, re-exported
	// for callers that only import sim.
	ErrInvalidConfiguration = games.ErrInvalidConfiguration

	ErrInterrupted = errors.New("simulation interrupted")
	ErrTimeout     = errors.New("simulation timed out")
)
