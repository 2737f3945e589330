package sim

import (
	"fmt"

	"github.com/MJE43/monty-hall-sim/internal/engine"
	"github.com/MJE43/monty-hall-sim/internal/games"
)

// RunSimulation plays rounds rounds on doors doors, drawing from src, and
// returns the finalized statistics. The configuration is checked before the
// first round is played.
func RunSimulation(src engine.Source, doors, rounds int) (Statistics, error) {
	table, err := games.NewTable(doors)
	if err != nil {
		return Statistics{}, err
	}
	if err := validateRounds(rounds); err != nil {
		return Statistics{}, err
	}

	tally := NewTally(doors)
	for i := 0; i < rounds; i++ {
		tally.Add(table.Play(src))
	}
	return tally.Statistics(), nil
}

func validateRounds(rounds int) error {
	if rounds < 1 {
		return fmt.Errorf("%w: round count must be at least 1, got %d", ErrInvalidConfiguration, rounds)
	}
	return nil
}
