package models

import "github.com/google/uuid"

// Participant is a person splitting a receipt. Identity is the ID; the
// display name may change at any time without touching existing claims,
// which reference participants by ID only.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// Name is the display name shown in share summaries.
	Name string
}

// NewParticipant creates a participant with a fresh ID.
func NewParticipant(name string) Participant {
	return Participant{
		ID:   uuid.New().String(),
		Name: name,
	}
}
