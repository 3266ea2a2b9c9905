package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/models"
	"estudamais-backend/internal/services"
)

// PracticeHandler exposes the interactive answering state of a single
// question: tentative selection, strike-through elimination, confirm and
// try-again.
type PracticeHandler struct {
	practiceService *services.PracticeService
}

func NewPracticeHandler(practiceService *services.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

func (h *PracticeHandler) Get(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseQuestionID(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	state, err := h.practiceService.Get(r.Context(), userID, questionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (h *PracticeHandler) Select(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseQuestionID(w, r)
	if !ok {
		return
	}

	var req models.PracticeSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	state, err := h.practiceService.Select(r.Context(), userID, questionID, req.Answer)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (h *PracticeHandler) Eliminate(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseQuestionID(w, r)
	if !ok {
		return
	}

	var req models.PracticeEliminateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	state, err := h.practiceService.Eliminate(r.Context(), userID, questionID, req.Option)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (h *PracticeHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseQuestionID(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	state, err := h.practiceService.Confirm(r.Context(), userID, questionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (h *PracticeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseQuestionID(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	state, err := h.practiceService.Reset(r.Context(), userID, questionID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func parseQuestionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "ID de questão inválido", r))
		return uuid.Nil, false
	}
	return id, true
}
