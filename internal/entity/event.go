package entity

import "encoding/json"

// Event is an opaque game event addressed to a room. The broker relays
// Type and Payload verbatim and never interprets either of them.
type Event struct {
	RoomID  string          `json:"room_id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
