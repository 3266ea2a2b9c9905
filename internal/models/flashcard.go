package models

import (
	"time"

	"github.com/google/uuid"
)

// Flashcard is a front/back study card. Cards are kept in the Redis
// key-value store per user, mirroring the original's local-only storage;
// they never touch the relational schema.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateFlashcardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}
