package games

import (
	"fmt"
	"math"

	"github.com/MJE43/monty-hall-sim/internal/engine"
)

const defaultDoors = MinDoors

// MontyHallGame replays a round from a provably fair stream. The metric is 1
// when switching wins and 0 when staying wins.
type MontyHallGame struct{}

// Spec returns metadata about the Monty Hall game.
func (g *MontyHallGame) Spec() GameSpec {
	return GameSpec{
		ID:          "montyhall",
		Name:        "Monty Hall",
		MetricLabel: "switch_win",
	}
}

// FloatCount returns the number of floats required (always RoundFloats).
func (g *MontyHallGame) FloatCount(params map[string]any) int {
	return RoundFloats
}

// Evaluate generates floats for nonce and resolves the round.
func (g *MontyHallGame) Evaluate(seeds engine.Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	floats := engine.Floats(seeds.Server, seeds.Client, nonce, 0, RoundFloats)
	return g.EvaluateWithFloats(floats, params)
}

// EvaluateWithFloats resolves the round using pre-computed floats.
func (g *MontyHallGame) EvaluateWithFloats(floats []float64, params map[string]any) (GameResult, error) {
	if len(floats) < RoundFloats {
		return GameResult{}, fmt.Errorf("montyhall requires at least %d floats, got %d", RoundFloats, len(floats))
	}

	doors, err := doorsParam(params)
	if err != nil {
		return GameResult{}, err
	}
	table, err := NewTable(doors)
	if err != nil {
		return GameResult{}, err
	}

	outcome := table.Play(engine.NewFloatStream(floats[:RoundFloats]))
	metric := 0.0
	if outcome.SwitchWon {
		metric = 1
	}

	return GameResult{
		Metric:      metric,
		MetricLabel: "switch_win",
		Details:     outcome,
	}, nil
}

// doorsParam reads "doors" as decoded JSON (float64) or a Go int. Floats
// must hold a whole number.
func doorsParam(params map[string]any) (int, error) {
	switch v := params["doors"].(type) {
	case nil:
		return defaultDoors, nil
	case int:
		return v, nil
	case int64:
		if int64(int(v)) != v {
			return 0, fmt.Errorf("%w: doors %d out of range", ErrInvalidConfiguration, v)
		}
		return int(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return 0, fmt.Errorf("%w: doors must be a whole number, got %v", ErrInvalidConfiguration, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: doors has unsupported type %T", ErrInvalidConfiguration, v)
	}
}
