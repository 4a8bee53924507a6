package storage

import "errors"

var (
	ErrUnknownDriver = errors.New("storage: unknown driver")
	ErrClosed        = errors.New("storage: store is closed")
)
