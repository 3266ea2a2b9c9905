package models

import (
	"time"

	"github.com/google/uuid"
)

// SimuladoSubject is one (folder, requested count) pair from the config
// screen. Count is clamped to [1, available] when the run is created.
type SimuladoSubject struct {
	FolderID uuid.UUID `json:"folder_id"`
	Count    int       `json:"count"`
}

// SimuladoQuestion is the snapshot of a question taken when a run is
// assembled. The snapshot is what gets scored, so later edits to the
// underlying question do not affect a run in progress.
type SimuladoQuestion struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Type           string    `json:"type"`
	Options        []string  `json:"options"`
	CorrectAnswer  *string   `json:"correct_answer"`
	CorrectBoolean *bool     `json:"correct_boolean"`
	Explanation    *string   `json:"explanation"`
	FolderName     string    `json:"folder_name"`
}

// SimuladoAnswer holds the user's answer to one question: Choice for
// multiple choice, Boolean for true/false.
type SimuladoAnswer struct {
	Choice  *string `json:"choice,omitempty"`
	Boolean *bool   `json:"boolean,omitempty"`
}

// SimuladoRun lives only in Redis for the duration of the attempt. It is
// never written to Postgres; once FinishedAt is set the run is sealed and
// scoring becomes a pure function of this snapshot.
type SimuladoRun struct {
	ID           uuid.UUID                 `json:"id"`
	UserID       uuid.UUID                 `json:"user_id"`
	Questions    []SimuladoQuestion        `json:"questions"`
	Answers      map[string]SimuladoAnswer `json:"answers"`
	CurrentIndex int                       `json:"current_index"`
	StartedAt    time.Time                 `json:"started_at"`
	FinishedAt   *time.Time                `json:"finished_at"`
}

func (r *SimuladoRun) Finished() bool { return r.FinishedAt != nil }

// RunQuestionView is a question as exposed while the run is open. Correct
// answers and explanations stay server-side until the run is finished.
type RunQuestionView struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Options    []string  `json:"options"`
	FolderName string    `json:"folder_name"`
}

type CreateSimuladoRequest struct {
	Subjects []SimuladoSubject `json:"subjects"`
}

type SimuladoAnswerRequest struct {
	QuestionID uuid.UUID      `json:"question_id"`
	Answer     SimuladoAnswer `json:"answer"`
}

// SubjectScore is the per-folder-name slice of the result breakdown.
type SubjectScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// QuestionReview is one row of the result screen's per-question review.
// UserAnswer and CorrectAnswer are display strings; true/false answers are
// rendered as "Verdadeiro"/"Falso".
type QuestionReview struct {
	QuestionID    uuid.UUID `json:"question_id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	FolderName    string    `json:"folder_name"`
	Options       []string  `json:"options"`
	UserAnswer    *string   `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	Answered      bool      `json:"answered"`
	Correct       bool      `json:"correct"`
	Explanation   *string   `json:"explanation"`
}

// SimuladoResult is recomputed from the sealed run on every read.
type SimuladoResult struct {
	RunID          uuid.UUID               `json:"run_id"`
	Correct        int                     `json:"correct"`
	Incorrect      int                     `json:"incorrect"`
	Unanswered     int                     `json:"unanswered"`
	Total          int                     `json:"total"`
	Percentage     int                     `json:"percentage"`
	ElapsedSeconds int                     `json:"elapsed_seconds"`
	BySubject      map[string]SubjectScore `json:"by_subject"`
	Review         []QuestionReview        `json:"review"`
}
