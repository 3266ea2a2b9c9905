package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"estudamais-backend/internal/middleware"
	"estudamais-backend/internal/models"
	"estudamais-backend/internal/repository"
)

type FolderHandler struct {
	folderRepo   *repository.FolderRepo
	questionRepo *repository.QuestionRepo
}

func NewFolderHandler(folderRepo *repository.FolderRepo, questionRepo *repository.QuestionRepo) *FolderHandler {
	return &FolderHandler{folderRepo: folderRepo, questionRepo: questionRepo}
}

func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required.Error("O nome é obrigatório"), validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Falha de validação", validationFields(err), r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	// Topics nest exactly one level under a subject.
	if req.ParentID != nil {
		parent, err := h.folderRepo.GetByID(r.Context(), *req.ParentID)
		if err != nil || parent.UserID != userID {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Pasta não encontrada", r))
			return
		}
		if parent.ParentID != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Tópicos não podem conter subpastas", r))
			return
		}
	}

	folder := &models.Folder{
		UserID:      userID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.folderRepo.Create(r.Context(), folder); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível criar a pasta", r))
		return
	}

	writeJSON(w, http.StatusCreated, folder)
}

func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	search := r.URL.Query().Get("search")

	folders, err := h.folderRepo.ListTopLevel(r.Context(), userID, search)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível listar as pastas", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"folders": folders})
}

// Get returns a folder together with its subfolders and, when the folder is
// a topic, the parent subject for the breadcrumb.
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.ownedFolder(w, r)
	if !ok {
		return
	}

	children, err := h.folderRepo.ListChildren(r.Context(), folder.UserID, folder.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível listar as subpastas", r))
		return
	}

	resp := map[string]interface{}{
		"folder":     folder,
		"subfolders": children,
	}

	if folder.ParentID != nil {
		parent, err := h.folderRepo.GetByID(r.Context(), *folder.ParentID)
		if err == nil {
			resp["parent"] = parent
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.ownedFolder(w, r)
	if !ok {
		return
	}

	var req models.UpdateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Corpo da requisição inválido", r))
		return
	}

	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required.Error("O nome é obrigatório"), validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Falha de validação", validationFields(err), r))
		return
	}

	if err := h.folderRepo.Update(r.Context(), folder.ID, req.Name, req.Description); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível atualizar a pasta", r))
		return
	}

	folder.Name = req.Name
	folder.Description = req.Description
	writeJSON(w, http.StatusOK, folder)
}

func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.ownedFolder(w, r)
	if !ok {
		return
	}

	if err := h.folderRepo.Delete(r.Context(), folder.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Não foi possível excluir a pasta", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Pasta excluída"})
}

func (h *FolderHandler) ownedFolder(w http.ResponseWriter, r *http.Request) (*models.Folder, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "ID de pasta inválido", r))
		return nil, false
	}

	folder, err := h.folderRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Pasta não encontrada", r))
		return nil, false
	}

	userID := middleware.GetUserID(r.Context())
	if folder.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Acesso negado", r))
		return nil, false
	}

	return folder, true
}

func validationFields(err error) map[string]string {
	fields := map[string]string{}
	if errs, ok := err.(validation.Errors); ok {
		for field, ferr := range errs {
			fields[field] = ferr.Error()
		}
		return fields
	}
	fields["_"] = err.Error()
	return fields
}
