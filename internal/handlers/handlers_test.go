package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"estudamais-backend/internal/models"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// ─── Question validation ───

func TestValidateQuestion_ValidMultipleChoice(t *testing.T) {
	req := &models.CreateQuestionRequest{
		Title:         "Qual é a capital do Brasil?",
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"São Paulo", "Brasília"},
		CorrectAnswer: strPtr("Brasília"),
	}

	if fields := validateQuestion(req); len(fields) != 0 {
		t.Fatalf("expected valid request, got %v", fields)
	}
}

func TestValidateQuestion_ValidTrueFalse(t *testing.T) {
	req := &models.CreateQuestionRequest{
		Title:          "O Brasil tem 26 estados.",
		Type:           models.QuestionTypeTrueFalse,
		CorrectBoolean: boolPtr(true),
	}

	if fields := validateQuestion(req); len(fields) != 0 {
		t.Fatalf("expected valid request, got %v", fields)
	}
}

func TestValidateQuestion_OptionCountBounds(t *testing.T) {
	tests := []struct {
		name    string
		options []string
	}{
		{"one option", []string{"a"}},
		{"six options", []string{"a", "b", "c", "d", "e", "f"}},
		{"no options", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := &models.CreateQuestionRequest{
				Title:         "t",
				Type:          models.QuestionTypeMultipleChoice,
				Options:       tc.options,
				CorrectAnswer: strPtr("a"),
			}
			if fields := validateQuestion(req); fields["options"] == "" {
				t.Fatalf("expected options error, got %v", fields)
			}
		})
	}
}

func TestValidateQuestion_EmptyOption(t *testing.T) {
	req := &models.CreateQuestionRequest{
		Title:         "t",
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"a", ""},
		CorrectAnswer: strPtr("a"),
	}

	if fields := validateQuestion(req); fields["options"] == "" {
		t.Fatalf("expected empty-option error, got %v", fields)
	}
}

func TestValidateQuestion_CorrectAnswerMustBeAnOption(t *testing.T) {
	req := &models.CreateQuestionRequest{
		Title:         "t",
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"a", "b"},
		CorrectAnswer: strPtr("c"),
	}

	if fields := validateQuestion(req); fields["correct_answer"] == "" {
		t.Fatalf("expected correct_answer error, got %v", fields)
	}
}

func TestValidateQuestion_TrueFalseRequiresBoolean(t *testing.T) {
	req := &models.CreateQuestionRequest{
		Title: "t",
		Type:  models.QuestionTypeTrueFalse,
	}

	if fields := validateQuestion(req); fields["correct_boolean"] == "" {
		t.Fatalf("expected correct_boolean error, got %v", fields)
	}
}

func TestValidateQuestion_TrueFalseRejectsOptions(t *testing.T) {
	req := &models.CreateQuestionRequest{
		Title:          "t",
		Type:           models.QuestionTypeTrueFalse,
		CorrectBoolean: boolPtr(false),
		Options:        []string{"a"},
	}

	if fields := validateQuestion(req); fields["options"] == "" {
		t.Fatalf("expected options error for true/false, got %v", fields)
	}
}

func TestValidateQuestion_MissingTitle(t *testing.T) {
	req := &models.CreateQuestionRequest{
		Type:           models.QuestionTypeTrueFalse,
		CorrectBoolean: boolPtr(true),
	}

	if fields := validateQuestion(req); fields["title"] == "" {
		t.Fatalf("expected title error, got %v", fields)
	}
}

// ─── Run payload ───

func TestRunPayload_HidesCorrectAnswers(t *testing.T) {
	correct := "b"
	run := &models.SimuladoRun{
		ID: uuid.New(),
		Questions: []models.SimuladoQuestion{
			{
				ID:            uuid.New(),
				Title:         "q",
				Type:          models.QuestionTypeMultipleChoice,
				Options:       []string{"a", "b"},
				CorrectAnswer: &correct,
				Explanation:   strPtr("porque sim"),
				FolderName:    "Direito",
			},
		},
		Answers:   map[string]models.SimuladoAnswer{},
		StartedAt: time.Now(),
	}

	payload := runPayload(run)

	views, ok := payload["questions"].([]models.RunQuestionView)
	if !ok {
		t.Fatalf("expected question views in payload")
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 question, got %d", len(views))
	}
	if views[0].Title != "q" || views[0].FolderName != "Direito" {
		t.Errorf("view lost question data: %+v", views[0])
	}
	if payload["finished"] != false {
		t.Errorf("open run must report finished=false")
	}
}

func TestUnansweredConflictResp(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/simulados/abc/finish", nil)
	r.Header.Set("X-Request-ID", "req-123")

	resp := unansweredConflictResp("Você deixou 3 questões sem resposta", 3, r)

	if resp.Error.Code != "CONFLICT" {
		t.Errorf("expected CONFLICT code, got %s", resp.Error.Code)
	}
	if got := resp.Error.Details["unanswered"]; got != 3 {
		t.Errorf("expected unanswered=3 in details, got %v", got)
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("expected request id to be carried, got %s", resp.Error.RequestID)
	}
}
