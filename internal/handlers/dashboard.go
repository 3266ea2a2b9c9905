package handlers

import (
	"net/http"

	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/repository"
	"estudamais-backend/internal/services"
)

type DashboardHandler struct {
	folderRepo       *repository.FolderRepo
	questionRepo     *repository.QuestionRepo
	statsService     *services.StatisticsService
	flashcardService *services.FlashcardService
}

func NewDashboardHandler(folderRepo *repository.FolderRepo, questionRepo *repository.QuestionRepo, statsService *services.StatisticsService, flashcardService *services.FlashcardService) *DashboardHandler {
	return &DashboardHandler{
		folderRepo:       folderRepo,
		questionRepo:     questionRepo,
		statsService:     statsService,
		flashcardService: flashcardService,
	}
}

// Summary aggregates the home-screen numbers: subject folders with their
// counts, collection totals, week study hours and whether a study session
// is running.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	subjects, err := h.folderRepo.ListTopLevel(r.Context(), userID, "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível carregar o painel", r))
		return
	}

	totalTopics := 0
	for _, subject := range subjects {
		totalTopics += subject.SubfolderCount
	}

	questions, err := h.questionRepo.ListAllWithFolder(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível carregar o painel", r))
		return
	}

	ready, err := h.folderRepo.ListWithQuestionCounts(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível carregar o painel", r))
		return
	}

	stats, err := h.statsService.Stats(r.Context(), userID, services.StatsPeriodWeek)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	cards, err := h.flashcardService.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subjects":         subjects,
		"total_subjects":   len(subjects),
		"total_topics":     totalTopics,
		"total_questions":  len(questions),
		"total_flashcards": len(cards),
		"simulado_ready":   len(ready),
		"week_hours":       stats.WeekHours,
		"open_session":     stats.OpenSession,
	})
}
