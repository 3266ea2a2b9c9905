package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"estudamais-backend/internal/models"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		folder string
		want   string
	}{
		{"Direito Constitucional", "Direito_Constitucional_Questoes_2026-08-30.pdf"},
		{"Matemática", "Matem_tica_Questoes_2026-08-30.pdf"},
		{"Prova #1 (2026)", "Prova__1__2026__Questoes_2026-08-30.pdf"},
		{"simple", "simple_Questoes_2026-08-30.pdf"},
	}

	for _, tc := range tests {
		if got := ExportFilename(tc.folder, now); got != tc.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tc.folder, got, tc.want)
		}
	}
}

func TestQuestionsPDF_ProducesDocument(t *testing.T) {
	correct := "Brasília"
	explanation := "Capital desde 1960."
	tfCorrect := true

	questions := []*models.Question{
		{
			ID:            uuid.New(),
			Title:         "Qual é a capital do Brasil?",
			Type:          models.QuestionTypeMultipleChoice,
			Options:       []string{"São Paulo", "Brasília", "Rio de Janeiro"},
			CorrectAnswer: &correct,
			Explanation:   &explanation,
		},
		{
			ID:             uuid.New(),
			Title:          "O Brasil tem 26 estados.",
			Type:           models.QuestionTypeTrueFalse,
			CorrectBoolean: &tfCorrect,
		},
	}

	svc := NewPDFService()
	data, err := svc.QuestionsPDF("Geografia", questions, time.Now())
	if err != nil {
		t.Fatalf("QuestionsPDF failed: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
	if len(data) < 1000 {
		t.Errorf("document suspiciously small: %d bytes", len(data))
	}
}

func TestQuestionsPDF_EmptyExplanation(t *testing.T) {
	correct := "a"
	questions := []*models.Question{
		{
			ID:            uuid.New(),
			Title:         "Questão sem explicação",
			Type:          models.QuestionTypeMultipleChoice,
			Options:       []string{"a", "b"},
			CorrectAnswer: &correct,
		},
	}

	svc := NewPDFService()
	if _, err := svc.QuestionsPDF("Pasta", questions, time.Now()); err != nil {
		t.Fatalf("QuestionsPDF failed for question without explanation: %v", err)
	}
}
