package roster

import "errors"

var ErrDuplicateParticipant = errors.New("roster: participant already registered")
