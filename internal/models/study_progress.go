package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StudyStatusNotStarted = "not_started"
	StudyStatusInProgress = "in_progress"
	StudyStatusCompleted  = "completed"
	StudyStatusReview     = "review"
)

const (
	StudyPriorityLow    = "low"
	StudyPriorityMedium = "medium"
	StudyPriorityHigh   = "high"
)

// StudyProgress is the per-(user, folder) tracking record of the study plan.
// Upserted on the unique (user_id, folder_id) pair.
type StudyProgress struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	FolderID      uuid.UUID  `json:"folder_id"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	LastStudiedAt *time.Time `json:"last_studied_at"`
	StudySessions int        `json:"study_sessions"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type UpdateProgressRequest struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
	Notes    *string `json:"notes"`
}

// TopicWithProgress is a topic folder joined with its progress record, if any.
type TopicWithProgress struct {
	Folder
	Progress *StudyProgress `json:"progress"`
}

// SubjectWithTopics is one study-plan entry: a subject folder, its topics,
// and how many of them are completed.
type SubjectWithTopics struct {
	Folder
	Topics         []TopicWithProgress `json:"topics"`
	CompletedCount int                 `json:"completed_count"`
	TotalCount     int                 `json:"total_count"`
}
