package handlers

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/models"
	"estudamais-backend/internal/repository"
)

type QuestionHandler struct {
	questionRepo *repository.QuestionRepo
	folderRepo   *repository.FolderRepo
}

func NewQuestionHandler(questionRepo *repository.QuestionRepo, folderRepo *repository.FolderRepo) *QuestionHandler {
	return &QuestionHandler{questionRepo: questionRepo, folderRepo: folderRepo}
}

func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "ID de pasta inválido", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	folder, err := h.folderRepo.GetByID(r.Context(), folderID)
	if err != nil || folder.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Pasta não encontrada", r))
		return
	}

	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	if fields := validateQuestion(&req); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Falha de validação", fields, r))
		return
	}

	question := &models.Question{
		FolderID:    folderID,
		UserID:      userID,
		Title:       req.Title,
		Type:        req.Type,
		Explanation: req.Explanation,
	}
	if req.Type == models.QuestionTypeMultipleChoice {
		question.Options = req.Options
		question.CorrectAnswer = req.CorrectAnswer
	} else {
		question.CorrectBoolean = req.CorrectBoolean
	}

	if err := h.questionRepo.Create(r.Context(), question); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível criar a questão", r))
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

func (h *QuestionHandler) ListByFolder(w http.ResponseWriter, r *http.Request) {
	folderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "ID de pasta inválido", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	folder, err := h.folderRepo.GetByID(r.Context(), folderID)
	if err != nil || folder.UserID != userID {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Pasta não encontrada", r))
		return
	}

	questions, err := h.questionRepo.ListByFolder(r.Context(), folderID, r.URL.Query().Get("search"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível listar as questões", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	question, ok := h.ownedQuestion(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	question, ok := h.ownedQuestion(w, r)
	if !ok {
		return
	}

	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	if fields := validateQuestion(&req); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Falha de validação", fields, r))
		return
	}

	question.Title = req.Title
	question.Type = req.Type
	question.Explanation = req.Explanation
	if req.Type == models.QuestionTypeMultipleChoice {
		question.Options = req.Options
		question.CorrectAnswer = req.CorrectAnswer
		question.CorrectBoolean = nil
	} else {
		question.Options = nil
		question.CorrectAnswer = nil
		question.CorrectBoolean = req.CorrectBoolean
	}

	if err := h.questionRepo.Update(r.Context(), question); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível atualizar a questão", r))
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	question, ok := h.ownedQuestion(w, r)
	if !ok {
		return
	}

	if err := h.questionRepo.Delete(r.Context(), question.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível excluir a questão", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Questão excluída"})
}

// Random draws one question from the user's whole collection, for the
// random-study card on the dashboard.
func (h *QuestionHandler) Random(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	questions, err := h.questionRepo.ListAllWithFolder(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível sortear uma questão", r))
		return
	}
	if len(questions) == 0 {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Nenhuma questão cadastrada ainda", r))
		return
	}

	writeJSON(w, http.StatusOK, questions[rand.Intn(len(questions))])
}

func (h *QuestionHandler) ownedQuestion(w http.ResponseWriter, r *http.Request) (*models.Question, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "ID de questão inválido", r))
		return nil, false
	}

	question, err := h.questionRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Questão não encontrada", r))
		return nil, false
	}

	userID := middleware.GetUserID(r.Context())
	if question.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Acesso negado", r))
		return nil, false
	}

	return question, true
}

// validateQuestion enforces the type-dependent rules: multiple choice needs
// 2 to 5 non-empty options with the correct answer among them, true/false
// needs the correct boolean and carries no options.
func validateQuestion(req *models.CreateQuestionRequest) map[string]string {
	fields := map[string]string{}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required.Error("Digite o enunciado da questão"), validation.Length(1, 1000)),
		validation.Field(&req.Type, validation.Required, validation.In(models.QuestionTypeMultipleChoice, models.QuestionTypeTrueFalse).Error("Tipo de questão inválido")),
		validation.Field(&req.Explanation, validation.Length(0, 2000)),
	); err != nil {
		for field, ferr := range validationFields(err) {
			fields[field] = ferr
		}
	}
	if len(fields) > 0 && fields["type"] != "" {
		return fields
	}

	switch req.Type {
	case models.QuestionTypeMultipleChoice:
		if len(req.Options) < 2 || len(req.Options) > 5 {
			fields["options"] = "Adicione de 2 a 5 alternativas"
			break
		}
		for i, opt := range req.Options {
			if opt == "" {
				fields["options"] = fmt.Sprintf("A alternativa %d está vazia", i+1)
				break
			}
		}
		if fields["options"] != "" {
			break
		}
		if req.CorrectAnswer == nil || *req.CorrectAnswer == "" {
			fields["correct_answer"] = "Selecione a alternativa correta"
			break
		}
		found := false
		for _, opt := range req.Options {
			if opt == *req.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			fields["correct_answer"] = "A resposta correta deve ser uma das alternativas"
		}
	case models.QuestionTypeTrueFalse:
		if req.CorrectBoolean == nil {
			fields["correct_boolean"] = "Indique se a afirmação é verdadeira ou falsa"
		}
		if len(req.Options) > 0 {
			fields["options"] = "Questões de verdadeiro ou falso não têm alternativas"
		}
	}

	return fields
}
