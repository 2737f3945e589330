package games

import "errors"

var (
	// ErrInvalidConfiguration is returned before any work starts when the
	// door count or round count cannot describe a game.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	ErrDoorOutOfRange  = errors.New("door out of range")
	ErrAlreadyChosen   = errors.New("initial door already chosen")
	ErrNotChosen       = errors.New("no initial door chosen")
	ErrDoorUnavailable = errors.New("door has been opened by the host")
	ErrGameOver        = errors.New("game is over")
)
