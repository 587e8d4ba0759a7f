package client

import "errors"

var (
	// ErrNoSession means the store does not remember a room
	ErrNoSession = errors.New("not in a room")

	// ErrAlreadyOpen is returned when Open is called on an open session
	ErrAlreadyOpen = errors.New("session already open")
)
