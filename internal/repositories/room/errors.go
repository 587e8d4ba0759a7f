package room

import (
	"errors"
	"fmt"
)

var (
	// ErrRoomNotFound is returned when a room is not found
	ErrRoomNotFound = errors.New("room not found")

	// ErrTransactionAborted is returned when a transition gives up on the room.
	// It matches ErrRoomNotFound so callers can treat both the same way.
	ErrTransactionAborted = fmt.Errorf("transaction aborted: %w", ErrRoomNotFound)

	// ErrRoomExists is returned when creating a room whose code is taken
	ErrRoomExists = errors.New("room already exists")

	// ErrConflictRetriesExhausted is returned when other writers kept winning.
	// The room is very likely fine; the caller should offer a retry.
	ErrConflictRetriesExhausted = errors.New("too many conflicting updates, try again")
)
