package games

import (
	"sort"

	"github.com/MJE43/monty-hall-sim/internal/engine"
)

// GameSpec describes a registered game.
type GameSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MetricLabel string `json:"metric_label"`
}

// GameResult is the outcome of evaluating one nonce.
type GameResult struct {
	Metric      float64 `json:"metric"`
	MetricLabel string  `json:"metric_label"`
	Details     any     `json:"details,omitempty"`
}

// Game is a round that can be replayed from seeds and a nonce.
type Game interface {
	Spec() GameSpec
	// FloatCount returns how many floats one evaluation consumes
	FloatCount(params map[string]any) int
	Evaluate(seeds engine.Seeds, nonce uint64, params map[string]any) (GameResult, error)
	EvaluateWithFloats(floats []float64, params map[string]any) (GameResult, error)
}

var registry = make(map[string]Game)

// RegisterGame adds a game to the registry
func RegisterGame(game Game) {
	registry[game.Spec().ID] = game
}

// GetGame retrieves a game by id
func GetGame(id string) (Game, bool) {
	game, ok := registry[id]
	return game, ok
}

// ListGames returns all registered game ids, sorted
func ListGames() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func init() {
	RegisterGame(&MontyHallGame{})
}
