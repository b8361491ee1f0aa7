package roomerrors

import "errors"

// Room directory sentinel errors. Used by both the lobby and ws packages
// to avoid circular imports.
var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomClosed    = errors.New("room closed")
	ErrNotInRoom     = errors.New("you are not in a room")
	ErrAlreadyInRoom = errors.New("already in a room")
	ErrNoBotProfiles = errors.New("no bot profiles configured")
	ErrUnknownAction = errors.New("unknown action")
)
