package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/models"
	"estudamais-backend/internal/services"
)

type SimuladoHandler struct {
	simuladoService *services.SimuladoService
}

func NewSimuladoHandler(simuladoService *services.SimuladoService) *SimuladoHandler {
	return &SimuladoHandler{simuladoService: simuladoService}
}

// Config lists the subjects available on the setup screen: every folder of
// the user that has at least one question, with its question count.
func (h *SimuladoHandler) Config(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	subjects, err := h.simuladoService.ListConfig(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})
}

func (h *SimuladoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSimuladoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	run, err := h.simuladoService.CreateRun(r.Context(), userID, req.Subjects)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, runPayload(run))
}

func (h *SimuladoHandler) Get(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseRunID(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	run, err := h.simuladoService.GetRun(r.Context(), userID, runID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, runPayload(run))
}

func (h *SimuladoHandler) Answer(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseRunID(w, r)
	if !ok {
		return
	}

	var req models.SimuladoAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	run, err := h.simuladoService.SaveAnswer(r.Context(), userID, runID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": run.Answers})
}

func (h *SimuladoHandler) Position(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseRunID(w, r)
	if !ok {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.simuladoService.SetPosition(r.Context(), userID, runID, req.Index); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"current_index": req.Index})
}

// Finish seals the run. Without confirm=true the call is rejected with a
// conflict while unanswered questions remain, so the client can show the
// "leave N blank?" prompt.
func (h *SimuladoHandler) Finish(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseRunID(w, r)
	if !ok {
		return
	}

	var req struct {
		Confirm bool `json:"confirm"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	userID := middleware.GetUserID(r.Context())
	run, unanswered, err := h.simuladoService.Finish(r.Context(), userID, runID, req.Confirm)
	if err != nil {
		var conflict *services.ConflictError
		if errors.As(err, &conflict) && unanswered > 0 {
			writeJSON(w, http.StatusConflict, unansweredConflictResp(conflict.Message, unanswered, r))
			return
		}
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"finished_at": run.FinishedAt,
		"unanswered":  unanswered,
	})
}

func (h *SimuladoHandler) Result(w http.ResponseWriter, r *http.Request) {
	runID, ok := parseRunID(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	result, err := h.simuladoService.Result(r.Context(), userID, runID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// unansweredConflictResp carries the unanswered count as structured data so
// the confirmation prompt does not have to parse the message.
func unansweredConflictResp(message string, unanswered int, r *http.Request) models.ErrorResponse {
	resp := errorResp("CONFLICT", message, r)
	resp.Error.Details = map[string]interface{}{"unanswered": unanswered}
	return resp
}

func parseRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	runID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "ID de simulado inválido", r))
		return uuid.Nil, false
	}
	return runID, true
}

// runPayload strips correct answers and explanations from the questions.
// They only surface through the result endpoint, after the run is sealed.
func runPayload(run *models.SimuladoRun) map[string]interface{} {
	views := make([]models.RunQuestionView, len(run.Questions))
	for i, q := range run.Questions {
		views[i] = models.RunQuestionView{
			ID:         q.ID,
			Title:      q.Title,
			Type:       q.Type,
			Options:    q.Options,
			FolderName: q.FolderName,
		}
	}
	return map[string]interface{}{
		"id":            run.ID,
		"questions":     views,
		"answers":       run.Answers,
		"current_index": run.CurrentIndex,
		"started_at":    run.StartedAt,
		"finished":      run.Finished(),
	}
}
