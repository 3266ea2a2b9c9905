package models

import (
	"time"

	"github.com/google/uuid"
)

// Folder is a user-defined grouping of questions. A top-level folder is a
// "subject"; a folder whose ParentID is set is a "topic" inside a subject.
// The UI only ever creates one level of nesting.
type Folder struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FolderSummary is a folder annotated with the counts the dashboard and
// the simulado config screen need.
type FolderSummary struct {
	Folder
	SubfolderCount int `json:"subfolder_count"`
	QuestionCount  int `json:"question_count"`
}

type CreateFolderRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

type UpdateFolderRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
