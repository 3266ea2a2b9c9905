package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
)

// Question is a single exam-preparation question inside a folder. Exactly one
// correctness field is populated: CorrectAnswer for multiple choice,
// CorrectBoolean for true/false. The other is always nil.
type Question struct {
	ID             uuid.UUID `json:"id"`
	FolderID       uuid.UUID `json:"folder_id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Type           string    `json:"type"`
	Options        []string  `json:"options"`
	CorrectAnswer  *string   `json:"correct_answer"`
	CorrectBoolean *bool     `json:"correct_boolean"`
	Explanation    *string   `json:"explanation"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuestionWithFolder carries the folder name alongside the question, for the
// random-study screen and the simulado result breakdown.
type QuestionWithFolder struct {
	Question
	FolderName string `json:"folder_name"`
}

type CreateQuestionRequest struct {
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Options        []string `json:"options"`
	CorrectAnswer  *string  `json:"correct_answer"`
	CorrectBoolean *bool    `json:"correct_boolean"`
	Explanation    *string  `json:"explanation"`
}
