package report

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"github.com/MJE43/monty-hall-sim/internal/sim"
)

// Document is the JSON shape of a simulation report.
type Document struct {
	RunID            string      `json:"run_id,omitempty"`
	Simulations      int64       `json:"simulations"`
	Doors            int         `json:"doors"`
	Results          Results     `json:"results"`
	Advantage        *float64    `json:"advantage"`
	DoorDistribution []DoorShare `json:"door_distribution,omitempty"`
	Interrupted      bool        `json:"interrupted,omitempty"`
}

type Results struct {
	Switch StrategyResult `json:"switch"`
	Stay   StrategyResult `json:"stay"`
}

// StrategyResult keeps the exact rate next to one-decimal display
// percentages.
type StrategyResult struct {
	Wins        int64   `json:"wins"`
	Rate        float64 `json:"rate"`
	Percentage  float64 `json:"percentage"`
	Theoretical float64 `json:"theoretical"`
}

type DoorShare struct {
	Door        int   `json:"door"`
	Prize       int64 `json:"prize"`
	InitialPick int64 `json:"initial_pick"`
}

// NewDocument builds the JSON document for stats. Door distribution is
// included only when requested.
func NewDocument(runID string, stats sim.Statistics, distribution bool) Document {
	doc := Document{
		RunID:       runID,
		Simulations: stats.TotalGames,
		Doors:       stats.Doors,
		Results: Results{
			Switch: StrategyResult{
				Wins:        stats.SwitchWins,
				Rate:        stats.SwitchRate,
				Percentage:  percentage(stats.SwitchRate),
				Theoretical: percentage(stats.TheoreticalSwitchRate),
			},
			Stay: StrategyResult{
				Wins:        stats.StayWins,
				Rate:        stats.StayRate,
				Percentage:  percentage(stats.StayRate),
				Theoretical: percentage(stats.TheoreticalStayRate),
			},
		},
		Interrupted: stats.Interrupted,
	}
	if stats.HasAdvantage() {
		adv := stats.AdvantageRatio
		doc.Advantage = &adv
	}
	if distribution {
		for _, d := range stats.DistributionDoors() {
			doc.DoorDistribution = append(doc.DoorDistribution, DoorShare{
				Door:        d,
				Prize:       stats.PrizeDoorCounts[d],
				InitialPick: stats.InitialPickCounts[d],
			})
		}
	}
	return doc
}

// WriteJSON writes the indented document followed by a newline.
func WriteJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// percentage turns a [0, 1] rate into a percentage rounded to one decimal.
func percentage(rate float64) float64 {
	f, _ := percentDecimal(rate).Float64()
	return f
}

func percentDecimal(rate float64) decimal.Decimal {
	return decimal.NewFromFloat(rate).Shift(2).Round(1)
}
