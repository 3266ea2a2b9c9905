package services

import (
	"testing"

	"github.com/google/uuid"

	"estudamais-backend/internal/models"
)

func practiceQuestion() *models.Question {
	correct := "b"
	return &models.Question{
		ID:            uuid.New(),
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"a", "b", "c"},
		CorrectAnswer: &correct,
	}
}

func practiceTFQuestion(correct bool) *models.Question {
	return &models.Question{
		ID:             uuid.New(),
		Type:           models.QuestionTypeTrueFalse,
		CorrectBoolean: &correct,
	}
}

func TestApplySelect_SetsTentativeAnswer(t *testing.T) {
	q := practiceQuestion()
	state := newPracticeState(q.ID)

	if err := applySelect(state, q, "a"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if state.Selected == nil || *state.Selected != "a" {
		t.Fatalf("expected selection a, got %v", state.Selected)
	}
	if state.Confirmed {
		t.Errorf("selection must not confirm the answer")
	}
	if state.Correct != nil {
		t.Errorf("correctness must stay hidden before confirm")
	}
}

func TestApplySelect_RejectsUnknownOption(t *testing.T) {
	q := practiceQuestion()
	state := newPracticeState(q.ID)

	err := applySelect(state, q, "z")
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestApplySelect_RejectsEliminatedOption(t *testing.T) {
	q := practiceQuestion()
	state := newPracticeState(q.ID)

	if err := applyEliminate(state, q, "a"); err != nil {
		t.Fatalf("eliminate failed: %v", err)
	}
	err := applySelect(state, q, "a")
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestApplySelect_RejectedAfterConfirm(t *testing.T) {
	q := practiceQuestion()
	state := newPracticeState(q.ID)

	applySelect(state, q, "b")
	if err := applyConfirm(state, q); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	err := applySelect(state, q, "a")
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected ConflictError after confirm, got %v", err)
	}
}

func TestApplyEliminate_Toggles(t *testing.T) {
	q := practiceQuestion()
	state := newPracticeState(q.ID)

	applyEliminate(state, q, "c")
	if len(state.Eliminated) != 1 || state.Eliminated[0] != "c" {
		t.Fatalf("expected [c], got %v", state.Eliminated)
	}

	applyEliminate(state, q, "c")
	if len(state.Eliminated) != 0 {
		t.Fatalf("expected elimination to toggle off, got %v", state.Eliminated)
	}
}

func TestApplyEliminate_ClearsSelection(t *testing.T) {
	q := practiceQuestion()
	state := newPracticeState(q.ID)

	applySelect(state, q, "a")
	applyEliminate(state, q, "a")

	if state.Selected != nil {
		t.Fatalf("eliminating the selected option must clear the selection, got %v", *state.Selected)
	}
}

func TestApplyConfirm_RequiresSelection(t *testing.T) {
	q := practiceQuestion()
	state := newPracticeState(q.ID)

	err := applyConfirm(state, q)
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestApplyConfirm_RevealsCorrectness(t *testing.T) {
	q := practiceQuestion()

	state := newPracticeState(q.ID)
	applySelect(state, q, "b")
	applyConfirm(state, q)
	if state.Correct == nil || !*state.Correct {
		t.Fatalf("expected correct answer to be marked correct")
	}

	state = newPracticeState(q.ID)
	applySelect(state, q, "a")
	applyConfirm(state, q)
	if state.Correct == nil || *state.Correct {
		t.Fatalf("expected wrong answer to be marked incorrect")
	}
}

func TestApplyConfirm_TrueFalse(t *testing.T) {
	q := practiceTFQuestion(true)

	state := newPracticeState(q.ID)
	if err := applySelect(state, q, "true"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	applyConfirm(state, q)
	if state.Correct == nil || !*state.Correct {
		t.Fatalf("expected true to be correct")
	}

	state = newPracticeState(q.ID)
	applySelect(state, q, "false")
	applyConfirm(state, q)
	if state.Correct == nil || *state.Correct {
		t.Fatalf("expected false to be incorrect")
	}
}

func TestValidOption_TrueFalseLiterals(t *testing.T) {
	q := practiceTFQuestion(true)

	if !validOption(q, "true") || !validOption(q, "false") {
		t.Fatalf("true/false literals must be valid")
	}
	if validOption(q, "verdadeiro") {
		t.Fatalf("only the english literals are stored options")
	}
}

func TestNewPracticeState_TryAgainBaseline(t *testing.T) {
	id := uuid.New()
	state := newPracticeState(id)

	if state.QuestionID != id.String() {
		t.Errorf("expected question id %s, got %s", id, state.QuestionID)
	}
	if state.Selected != nil || state.Confirmed || state.Correct != nil {
		t.Errorf("fresh state must be unanswered")
	}
	if len(state.Eliminated) != 0 {
		t.Errorf("fresh state must have no eliminations")
	}
}
