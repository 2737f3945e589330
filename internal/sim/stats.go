package sim

import (
	"maps"
	"math"
	"slices"

	"github.com/MJE43/monty-hall-sim/internal/games"
)

// Statistics summarizes a finished (or interrupted) simulation. Rates are
// full-precision fractions in [0, 1]; rounding is left to the report layer.
type Statistics struct {
	Doors      int
	TotalGames int64
	SwitchWins int64
	StayWins   int64

	SwitchRate            float64
	StayRate              float64
	TheoreticalSwitchRate float64
	TheoreticalStayRate   float64

	// AdvantageRatio is SwitchRate/StayRate, or +Inf when no stay win was
	// observed. Check HasAdvantage before using it.
	AdvantageRatio float64

	// Per-door counts of where the prize was placed and where the player
	// first pointed. Doors that never came up are absent.
	PrizeDoorCounts   map[int]int64
	InitialPickCounts map[int]int64

	// Interrupted marks a run that stopped early. Counts cover only rounds
	// that completed.
	Interrupted bool
}

// HasAdvantage reports whether AdvantageRatio is defined.
func (s Statistics) HasAdvantage() bool {
	return s.StayWins > 0
}

// ExpectedDoorShare is the share of rounds each door should receive as prize
// door or initial pick.
func (s Statistics) ExpectedDoorShare() float64 {
	if s.Doors == 0 {
		return 0
	}
	return 1 / float64(s.Doors)
}

// MaxListedDoors is the largest door count for which DistributionDoors lists
// every door, including those that never came up.
const MaxListedDoors = 1024

// DistributionDoors returns the doors a distribution table should show, in
// ascending order: every door up to MaxListedDoors, otherwise only the doors
// that were drawn as prize or initial pick.
func (s Statistics) DistributionDoors() []int {
	if s.Doors <= MaxListedDoors {
		doors := make([]int, s.Doors)
		for i := range doors {
			doors[i] = i
		}
		return doors
	}
	seen := maps.Clone(s.PrizeDoorCounts)
	if seen == nil {
		seen = make(map[int]int64, len(s.InitialPickCounts))
	}
	for d, c := range s.InitialPickCounts {
		seen[d] += c
	}
	return slices.Sorted(maps.Keys(seen))
}

// TheoreticalSwitchRate is (n-1)/n.
func TheoreticalSwitchRate(doors int) float64 {
	return float64(doors-1) / float64(doors)
}

// TheoreticalStayRate is 1/n.
func TheoreticalStayRate(doors int) float64 {
	return 1 / float64(doors)
}

// Tally accumulates round outcomes. It is not safe for concurrent use; the
// simulator gives each worker batch its own and merges them. Door counts are
// sparse, so memory grows with the doors actually drawn, not the door count.
type Tally struct {
	doors       int
	games       int64
	switchWins  int64
	stayWins    int64
	prizeCounts map[int]int64
	pickCounts  map[int]int64
}

func NewTally(doors int) *Tally {
	return &Tally{
		doors:       doors,
		prizeCounts: make(map[int]int64),
		pickCounts:  make(map[int]int64),
	}
}

// Add records one resolved round.
func (t *Tally) Add(o games.RoundOutcome) {
	t.games++
	if o.SwitchWon {
		t.switchWins++
	}
	if o.StayWon {
		t.stayWins++
	}
	t.prizeCounts[o.PrizeDoor]++
	t.pickCounts[o.InitialPick]++
}

// Merge folds other into t. Both must share a door count.
func (t *Tally) Merge(other *Tally) {
	t.games += other.games
	t.switchWins += other.switchWins
	t.stayWins += other.stayWins
	for d, c := range other.prizeCounts {
		t.prizeCounts[d] += c
	}
	for d, c := range other.pickCounts {
		t.pickCounts[d] += c
	}
}

func (t *Tally) Games() int64 {
	return t.games
}

// Statistics finalizes the tally.
func (t *Tally) Statistics() Statistics {
	s := Statistics{
		Doors:                 t.doors,
		TotalGames:            t.games,
		SwitchWins:            t.switchWins,
		StayWins:              t.stayWins,
		TheoreticalSwitchRate: TheoreticalSwitchRate(t.doors),
		TheoreticalStayRate:   TheoreticalStayRate(t.doors),
		PrizeDoorCounts:       maps.Clone(t.prizeCounts),
		InitialPickCounts:     maps.Clone(t.pickCounts),
	}
	if t.games > 0 {
		s.SwitchRate = float64(t.switchWins) / float64(t.games)
		s.StayRate = float64(t.stayWins) / float64(t.games)
	}
	if t.stayWins > 0 {
		s.AdvantageRatio = s.SwitchRate / s.StayRate
	} else {
		s.AdvantageRatio = math.Inf(1)
	}
	return s
}
