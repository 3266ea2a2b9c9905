package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/models"
	"estudamais-backend/internal/repository"
)

type StudyPlanHandler struct {
	folderRepo   *repository.FolderRepo
	progressRepo *repository.ProgressRepo
}

func NewStudyPlanHandler(folderRepo *repository.FolderRepo, progressRepo *repository.ProgressRepo) *StudyPlanHandler {
	return &StudyPlanHandler{folderRepo: folderRepo, progressRepo: progressRepo}
}

// List returns the study plan: every subject with its topics, each topic
// joined with its progress record when one exists.
func (h *StudyPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	subjects, err := h.folderRepo.ListTopLevel(r.Context(), userID, "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível montar o plano de estudos", r))
		return
	}

	progress, err := h.progressRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível montar o plano de estudos", r))
		return
	}
	byFolder := make(map[uuid.UUID]*models.StudyProgress, len(progress))
	for _, p := range progress {
		byFolder[p.FolderID] = p
	}

	plan := make([]models.SubjectWithTopics, 0, len(subjects))
	for _, subject := range subjects {
		children, err := h.folderRepo.ListChildren(r.Context(), userID, subject.ID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível montar o plano de estudos", r))
			return
		}

		entry := models.SubjectWithTopics{
			Folder:     subject.Folder,
			Topics:     make([]models.TopicWithProgress, 0, len(children)),
			TotalCount: len(children),
		}
		for _, child := range children {
			topic := models.TopicWithProgress{Folder: child.Folder}
			if p, ok := byFolder[child.ID]; ok {
				topic.Progress = p
				if p.Status == models.StudyStatusCompleted {
					entry.CompletedCount++
				}
			}
			entry.Topics = append(entry.Topics, topic)
		}
		plan = append(plan, entry)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"subjects": plan})
}

// UpdateProgress upserts the progress of one topic. Omitted fields keep
// their current value; a brand-new record starts as not_started/medium.
func (h *StudyPlanHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	err = validation.ValidateStruct(&req,
		validation.Field(&req.Status, validation.In(
			models.StudyStatusNotStarted, models.StudyStatusInProgress,
			models.StudyStatusCompleted, models.StudyStatusReview,
		).Error("Status inválido")),
		validation.Field(&req.Priority, validation.In(
			models.StudyPriorityLow, models.StudyPriorityMedium, models.StudyPriorityHigh,
		).Error("Prioridade inválida")),
	)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Falha de validação", validationFields(err), r))
		return
	}

	current, err := h.progressRepo.GetByFolder(r.Context(), userID, folderID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível atualizar o progresso", r))
			return
		}
		current = &models.StudyProgress{
			UserID:   userID,
			FolderID: folderID,
			Status:   models.StudyStatusNotStarted,
			Priority: models.StudyPriorityMedium,
		}
	}

	if req.Status != nil {
		current.Status = *req.Status
	}
	if req.Priority != nil {
		current.Priority = *req.Priority
	}
	if req.Notes != nil {
		current.Notes = req.Notes
	}

	if err := h.progressRepo.Upsert(r.Context(), current); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível atualizar o progresso", r))
		return
	}

	writeJSON(w, http.StatusOK, current)
}
