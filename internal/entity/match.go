package entity

import "time"

// Match is the operational record of a successful pairing.
type Match struct {
	RoomID       string        `json:"room_id"`
	Participants []Participant `json:"participants"`
	CreatedAt    time.Time     `json:"created_at"`
}

func NewMatch(roomID, waiterID, joinerID string) *Match {
	return &Match{
		RoomID: roomID,
		Participants: []Participant{
			{ID: waiterID},
			{ID: joinerID},
		},
		CreatedAt: time.Now().UTC(),
	}
}
