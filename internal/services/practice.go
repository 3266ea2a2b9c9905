package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"estudamais-backend/internal/models"
	"estudamais-backend/internal/repository"
)

// practiceTTL scopes practice state to roughly one study sitting.
const practiceTTL = 6 * time.Hour

// PracticeService tracks the transient answering state of questions on the
// study screens: tentative selection, struck-through options, confirmed
// correctness. State lives per (user, question) in Redis and is never
// persisted to Postgres.
type PracticeService struct {
	questionRepo *repository.QuestionRepo
	redis        *redis.Client
}

func NewPracticeService(questionRepo *repository.QuestionRepo, redisClient *redis.Client) *PracticeService {
	return &PracticeService{questionRepo: questionRepo, redis: redisClient}
}

func (s *PracticeService) Get(ctx context.Context, userID, questionID uuid.UUID) (*models.PracticeState, error) {
	if _, err := s.ownedQuestion(ctx, userID, questionID); err != nil {
		return nil, err
	}
	return s.loadState(ctx, userID, questionID)
}

// Select marks a tentative answer. Selecting an eliminated option is
// rejected; selecting after confirm is rejected.
func (s *PracticeService) Select(ctx context.Context, userID, questionID uuid.UUID, answer string) (*models.PracticeState, error) {
	question, err := s.ownedQuestion(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}
	state, err := s.loadState(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}
	if err := applySelect(state, question, answer); err != nil {
		return nil, err
	}
	return state, s.saveState(ctx, userID, state)
}

// Eliminate toggles the strike-through on one option. Eliminating the
// currently selected option clears the selection.
func (s *PracticeService) Eliminate(ctx context.Context, userID, questionID uuid.UUID, option string) (*models.PracticeState, error) {
	question, err := s.ownedQuestion(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}
	state, err := s.loadState(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}
	if err := applyEliminate(state, question, option); err != nil {
		return nil, err
	}
	return state, s.saveState(ctx, userID, state)
}

// Confirm seals the tentative selection and reveals correctness.
func (s *PracticeService) Confirm(ctx context.Context, userID, questionID uuid.UUID) (*models.PracticeState, error) {
	question, err := s.ownedQuestion(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}
	state, err := s.loadState(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}
	if err := applyConfirm(state, question); err != nil {
		return nil, err
	}
	return state, s.saveState(ctx, userID, state)
}

// Reset is the "try again" action: back to answerable, no eliminations, no
// revealed correctness.
func (s *PracticeService) Reset(ctx context.Context, userID, questionID uuid.UUID) (*models.PracticeState, error) {
	if _, err := s.ownedQuestion(ctx, userID, questionID); err != nil {
		return nil, err
	}
	state := newPracticeState(questionID)
	return state, s.saveState(ctx, userID, state)
}

// State transitions, pure over (state, question).

func newPracticeState(questionID uuid.UUID) *models.PracticeState {
	return &models.PracticeState{QuestionID: questionID.String(), Eliminated: []string{}}
}

func applySelect(state *models.PracticeState, q *models.Question, answer string) error {
	if state.Confirmed {
		return &ConflictError{Message: "Questão já respondida. Use \"tentar novamente\" para recomeçar."}
	}
	if !validOption(q, answer) {
		return &ValidationError{Fields: map[string]string{"answer": "Opção inválida para esta questão"}}
	}
	if slices.Contains(state.Eliminated, answer) {
		return &ConflictError{Message: "Opção eliminada não pode ser selecionada"}
	}
	state.Selected = &answer
	return nil
}

func applyEliminate(state *models.PracticeState, q *models.Question, option string) error {
	if state.Confirmed {
		return &ConflictError{Message: "Questão já respondida. Use \"tentar novamente\" para recomeçar."}
	}
	if !validOption(q, option) {
		return &ValidationError{Fields: map[string]string{"option": "Opção inválida para esta questão"}}
	}

	if i := slices.Index(state.Eliminated, option); i >= 0 {
		state.Eliminated = slices.Delete(state.Eliminated, i, i+1)
		return nil
	}

	state.Eliminated = append(state.Eliminated, option)
	if state.Selected != nil && *state.Selected == option {
		state.Selected = nil
	}
	return nil
}

func applyConfirm(state *models.PracticeState, q *models.Question) error {
	if state.Confirmed {
		return &ConflictError{Message: "Questão já respondida"}
	}
	if state.Selected == nil {
		return &ValidationError{Fields: map[string]string{"answer": "Selecione uma resposta antes de confirmar"}}
	}

	correct := false
	switch q.Type {
	case models.QuestionTypeMultipleChoice:
		correct = q.CorrectAnswer != nil && *state.Selected == *q.CorrectAnswer
	case models.QuestionTypeTrueFalse:
		correct = q.CorrectBoolean != nil && *state.Selected == boolOption(*q.CorrectBoolean)
	}

	state.Confirmed = true
	state.Correct = &correct
	return nil
}

// validOption reports whether the answer names a real option: one of the
// stored options for multiple choice, "true"/"false" for true/false.
func validOption(q *models.Question, answer string) bool {
	switch q.Type {
	case models.QuestionTypeMultipleChoice:
		return slices.Contains(q.Options, answer)
	case models.QuestionTypeTrueFalse:
		return answer == "true" || answer == "false"
	}
	return false
}

func boolOption(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (s *PracticeService) ownedQuestion(ctx context.Context, userID, questionID uuid.UUID) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, &NotFoundError{Message: "Questão não encontrada"}
	}
	if question.UserID != userID {
		return nil, &ForbiddenError{Message: "Questão não encontrada"}
	}
	return question, nil
}

func (s *PracticeService) loadState(ctx context.Context, userID uuid.UUID, questionID uuid.UUID) (*models.PracticeState, error) {
	data, err := s.redis.Get(ctx, practiceKey(userID, questionID.String())).Result()
	if err != nil {
		// No stored state means the question is untouched
		return newPracticeState(questionID), nil
	}

	state := &models.PracticeState{}
	if err := json.Unmarshal([]byte(data), state); err != nil {
		return nil, fmt.Errorf("decode practice state: %w", err)
	}
	return state, nil
}

func (s *PracticeService) saveState(ctx context.Context, userID uuid.UUID, state *models.PracticeState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode practice state: %w", err)
	}
	return s.redis.Set(ctx, practiceKey(userID, state.QuestionID), data, practiceTTL).Err()
}

func practiceKey(userID uuid.UUID, questionID string) string {
	return "practice:" + userID.String() + ":" + questionID
}
