package pkg

import "github.com/google/uuid"

// GenerateParticipantID - generates a unique identifier for a new connection.
func GenerateParticipantID() string {
	return uuid.New().String()
}
