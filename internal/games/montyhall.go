package games

import (
	"encoding/json"
	"fmt"

	"github.com/MJE43/monty-hall-sim/internal/engine"
)

const (
	// MinDoors is the smallest door count that leaves the host a door to open.
	MinDoors = 3

	// RoundFloats is the number of floats a round always consumes: prize,
	// initial pick, and the host's choice of which goat door stays closed.
	RoundFloats = 3
)

// RoundOutcome is a single resolved round. Revealed doors are not stored;
// they are the complement of {InitialPick, SwitchPick} and are enumerated on
// demand by RevealedDoors.
type RoundOutcome struct {
	Doors       int
	PrizeDoor   int
	InitialPick int
	SwitchPick  int
	StayWon     bool
	SwitchWon   bool
}

// ValidateDoors reports ErrInvalidConfiguration for door counts below MinDoors.
func ValidateDoors(doors int) error {
	if doors < MinDoors {
		return fmt.Errorf("%w: door count must be at least %d, got %d", ErrInvalidConfiguration, MinDoors, doors)
	}
	return nil
}

// PlayRound places the prize, makes an initial pick and lets the host open
// every door but one, then resolves both strategies.
func PlayRound(src engine.Source, doors int) (RoundOutcome, error) {
	t, err := NewTable(doors)
	if err != nil {
		return RoundOutcome{}, err
	}
	return t.Play(src), nil
}

// Table is a validated door count. Simulations build one and play many
// rounds on it without re-checking the configuration.
type Table struct {
	doors int
}

func NewTable(doors int) (Table, error) {
	if err := ValidateDoors(doors); err != nil {
		return Table{}, err
	}
	return Table{doors: doors}, nil
}

func (t Table) Doors() int {
	return t.doors
}

// Play resolves one round. The zero Table is not valid.
func (t Table) Play(src engine.Source) RoundOutcome {
	prize := engine.Index(src.Float64(), t.doors)
	pick := engine.Index(src.Float64(), t.doors)
	// Always drawn so a nonce maps to a fixed float layout.
	f := src.Float64()
	return resolve(t.doors, prize, pick, SwitchTarget(t.doors, prize, pick, f))
}

// SwitchTarget returns the only door other than pick left closed by the host.
// If the player missed the prize the host must keep the prize closed;
// otherwise the host keeps one of the doors-1 goat doors closed, chosen by f.
func SwitchTarget(doors, prize, pick int, f float64) int {
	if pick != prize {
		return prize
	}
	i := engine.Index(f, doors-1)
	if i >= pick {
		i++
	}
	return i
}

func resolve(doors, prize, pick, target int) RoundOutcome {
	return RoundOutcome{
		Doors:       doors,
		PrizeDoor:   prize,
		InitialPick: pick,
		SwitchPick:  target,
		StayWon:     pick == prize,
		SwitchWon:   target == prize,
	}
}

// RevealedDoors lists the doors the host opened, ascending.
func (o RoundOutcome) RevealedDoors() []int {
	if o.Doors < MinDoors {
		return nil
	}
	revealed := make([]int, 0, o.Doors-2)
	for d := 0; d < o.Doors; d++ {
		if d != o.InitialPick && d != o.SwitchPick {
			revealed = append(revealed, d)
		}
	}
	return revealed
}

func (o RoundOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Doors         int   `json:"doors"`
		PrizeDoor     int   `json:"prize_door"`
		InitialPick   int   `json:"initial_pick"`
		RevealedDoors []int `json:"revealed_doors"`
		SwitchPick    int   `json:"switch_pick"`
		StayWon       bool  `json:"stay_result"`
		SwitchWon     bool  `json:"switch_result"`
	}{
		Doors:         o.Doors,
		PrizeDoor:     o.PrizeDoor,
		InitialPick:   o.InitialPick,
		RevealedDoors: o.RevealedDoors(),
		SwitchPick:    o.SwitchPick,
		StayWon:       o.StayWon,
		SwitchWon:     o.SwitchWon,
	})
}
