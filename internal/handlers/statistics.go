package handlers

import (
	"net/http"

	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/services"
)

type StatisticsHandler struct {
	statsService *services.StatisticsService
}

func NewStatisticsHandler(statsService *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsService: statsService}
}

// Stats returns the study-hours chart for ?period=day|week|month, defaulting
// to week.
func (h *StatisticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats, err := h.statsService.Stats(r.Context(), userID, r.URL.Query().Get("period"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
