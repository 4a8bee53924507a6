package round

import "errors"

var (
	ErrNoMode          = errors.New("round: no mode given")
	ErrNoArena         = errors.New("round: no arena available")
	ErrRoundInProgress = errors.New("round: a round is already in progress")
)
