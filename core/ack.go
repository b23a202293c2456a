package core

import (
	"time"

	"github.com/google/uuid"
)

// Acknowledgement is returned by actions that are accepted but not persisted.
type Acknowledgement struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Message    string    `json:"message"`
	Persisted  bool      `json:"persisted"`
	AcceptedAt time.Time `json:"accepted_at"` // UTC
}

func NewAcknowledgement(action, msg string) Acknowledgement {
	return Acknowledgement{
		ID:         uuid.New().String(),
		Action:     action,
		Message:    msg,
		AcceptedAt: time.Now().UTC(),
	}
}
