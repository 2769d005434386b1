package apperror

import "errors"

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrEmptyRoomID      = errors.New("room id is empty")
	ErrConnectionClosed = errors.New("connection closed")
)
