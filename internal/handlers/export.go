package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/repository"
	"estudamais-backend/internal/services"
)

type ExportHandler struct {
	folderRepo   *repository.FolderRepo
	questionRepo *repository.QuestionRepo
	pdfService   *services.PDFService
}

func NewExportHandler(folderRepo *repository.FolderRepo, questionRepo *repository.QuestionRepo, pdfService *services.PDFService) *ExportHandler {
	return &ExportHandler{folderRepo: folderRepo, questionRepo: questionRepo, pdfService: pdfService}
}

// QuestionsPDF streams the folder's questions as a PDF download.
func (h *ExportHandler) QuestionsPDF(w http.ResponseWriter, r *http.Request) {
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

	questions, err := h.questionRepo.ListByFolder(r.Context(), folderID, "")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível gerar o PDF", r))
		return
	}
	if len(questions) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "A pasta não tem questões para exportar", r))
		return
	}

	now := time.Now()
	pdfBytes, err := h.pdfService.QuestionsPDF(folder.Name, questions, now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível gerar o PDF", r))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFilename(folder.Name, now)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
