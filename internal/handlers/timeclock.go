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

type TimeclockHandler struct {
	timeclockService *services.TimeclockService
}

func NewTimeclockHandler(timeclockService *services.TimeclockService) *TimeclockHandler {
	return &TimeclockHandler{timeclockService: timeclockService}
}

func (h *TimeclockHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req models.TimeclockRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	userID := middleware.GetUserID(r.Context())
	record, err := h.timeclockService.ClockIn(r.Context(), userID, req.Notes)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *TimeclockHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req models.TimeclockRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	userID := middleware.GetUserID(r.Context())
	record, err := h.timeclockService.ClockOut(r.Context(), userID, req.Notes)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *TimeclockHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	records, active, err := h.timeclockService.ListRecent(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"active":  active,
	})
}

func (h *TimeclockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "ID de registro inválido", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.timeclockService.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Registro excluído"})
}
