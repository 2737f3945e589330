package games

import (
	"fmt"

	"github.com/MJE43/monty-hall-sim/internal/engine"
)

// Session is a player-driven round: the player picks a door, the host opens
// all but two closed doors, then the player commits to one of them.
type Session struct {
	src   engine.Source
	doors int
	prize int
	pick  int
	kept  int
	final int
}

// PlayResult is the end of a Session.
type PlayResult struct {
	Outcome   RoundOutcome `json:"outcome"`
	FinalPick int          `json:"final_pick"`
	Switched  bool         `json:"switched"`
	Won       bool         `json:"won"`
}

// NewSession places the prize and waits for the initial pick.
func NewSession(src engine.Source, doors int) (*Session, error) {
	if err := ValidateDoors(doors); err != nil {
		return nil, err
	}
	return &Session{
		src:   src,
		doors: doors,
		prize: engine.Index(src.Float64(), doors),
		pick:  -1,
		kept:  -1,
		final: -1,
	}, nil
}

func (s *Session) Doors() int {
	return s.doors
}

// Pick returns the initial pick, if one was made.
func (s *Session) Pick() (int, bool) {
	return s.pick, s.pick >= 0
}

func (s *Session) Over() bool {
	return s.final >= 0
}

// Choose records the initial pick and has the host open the other doors.
func (s *Session) Choose(door int) error {
	if s.Over() {
		return ErrGameOver
	}
	if s.pick >= 0 {
		return ErrAlreadyChosen
	}
	if door < 0 || door >= s.doors {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrDoorOutOfRange, door, s.doors)
	}
	s.pick = door
	s.kept = SwitchTarget(s.doors, s.prize, door, s.src.Float64())
	return nil
}

// Revealed lists the doors opened by the host; empty before Choose.
func (s *Session) Revealed() []int {
	if s.pick < 0 {
		return nil
	}
	return s.outcome().RevealedDoors()
}

// Available lists the closed doors the player may finish on, ascending.
// Before Choose every door is available.
func (s *Session) Available() []int {
	if s.pick < 0 {
		doors := make([]int, s.doors)
		for i := range doors {
			doors[i] = i
		}
		return doors
	}
	if s.pick < s.kept {
		return []int{s.pick, s.kept}
	}
	return []int{s.kept, s.pick}
}

// SwitchDoor is the closed door the player would move to by switching.
func (s *Session) SwitchDoor() (int, error) {
	if s.pick < 0 {
		return 0, ErrNotChosen
	}
	return s.kept, nil
}

// Finish commits to door, which must still be closed.
func (s *Session) Finish(door int) (PlayResult, error) {
	if s.Over() {
		return PlayResult{}, ErrGameOver
	}
	if s.pick < 0 {
		return PlayResult{}, ErrNotChosen
	}
	if door < 0 || door >= s.doors {
		return PlayResult{}, fmt.Errorf("%w: %d not in [0, %d)", ErrDoorOutOfRange, door, s.doors)
	}
	if door != s.pick && door != s.kept {
		return PlayResult{}, fmt.Errorf("%w: %d", ErrDoorUnavailable, door)
	}
	s.final = door
	return PlayResult{
		Outcome:   s.outcome(),
		FinalPick: door,
		Switched:  door != s.pick,
		Won:       door == s.prize,
	}, nil
}

func (s *Session) outcome() RoundOutcome {
	return resolve(s.doors, s.prize, s.pick, s.kept)
}
