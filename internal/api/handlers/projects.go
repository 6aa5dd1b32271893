package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quantumleap-ai/sitekit/internal/models"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

// tagList accepts either a JSON array of strings or a single string with
// comma/newline separators, which is how the admin console submits tags.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = normalizeTags(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = normalizeTags(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	}))
	return nil
}

func normalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

type projectRequest struct {
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Tags         tagList `json:"tags"`
	ImageURL     string  `json:"imageUrl"`
	DisplayOrder int     `json:"displayOrder"`
}

func (p *projectRequest) validate() string {
	if strings.TrimSpace(p.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(p.Category) == "" {
		return "category is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		return "description is required"
	}
	return ""
}

func (p *projectRequest) toModel(id int64) *models.Project {
	return &models.Project{
		ID:           id,
		Title:        p.Title,
		Category:     p.Category,
		Description:  p.Description,
		Tags:         p.Tags,
		ImageURL:     p.ImageURL,
		DisplayOrder: p.DisplayOrder,
	}
}

// GetProjects handles GET /api/projects.
func GetProjects(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := store.GetProjects(r.Context())
		if err != nil {
			slog.Error("failed to get projects", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load projects")
			return
		}
		writeJSON(w, http.StatusOK, projects)
	}
}

// CreateProject handles POST /api/projects.
func CreateProject(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		created, err := store.CreateProject(r.Context(), req.toModel(0))
		if err != nil {
			slog.Error("failed to create project", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create project")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateProject handles PUT /api/projects/{id}.
func UpdateProject(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid project ID")
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		updated, err := store.UpdateProject(r.Context(), req.toModel(id))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Project not found")
				return
			}
			slog.Error("failed to update project", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update project")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteProject handles DELETE /api/projects/{id}.
func DeleteProject(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid project ID")
			return
		}

		if err := store.DeleteProject(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Project not found")
				return
			}
			slog.Error("failed to delete project", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete project")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
