package bus

import "errors"

var (
	ErrInvalidEventType = errors.New("bus: invalid event type")
	ErrNilHandler       = errors.New("bus: nil handler")
)
