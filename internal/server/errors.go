package server

import "errors"

var (
	ErrFeedRunning  = errors.New("server: feed is already running")
	ErrInvalidEvent = errors.New("server: event cannot be encoded")
)
