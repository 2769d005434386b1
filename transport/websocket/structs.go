package websocket

import "encoding/json"

// movePayload is the legacy single-purpose relay request; the move itself
// stays opaque.
type movePayload struct {
	RoomID string          `json:"room_id"`
	Move   json.RawMessage `json:"move"`
}
