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

// GetServices handles GET /api/services.
func GetServices(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := store.GetServices(r.Context())
		if err != nil {
			slog.Error("failed to get services", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load services")
			return
		}
		writeJSON(w, http.StatusOK, services)
	}
}

// CreateService handles POST /api/services.
func CreateService(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var svc models.Service
		if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := validateService(&svc); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		created, err := store.CreateService(r.Context(), &svc)
		if err != nil {
			slog.Error("failed to create service", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create service")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateService handles PUT /api/services/{id}.
func UpdateService(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid service ID")
			return
		}

		var svc models.Service
		if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := validateService(&svc); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		svc.ID = id

		updated, err := store.UpdateService(r.Context(), &svc)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Service not found")
				return
			}
			slog.Error("failed to update service", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update service")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteService handles DELETE /api/services/{id}.
func DeleteService(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid service ID")
			return
		}

		if err := store.DeleteService(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Service not found")
				return
			}
			slog.Error("failed to delete service", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete service")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func validateService(svc *models.Service) string {
	if strings.TrimSpace(svc.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(svc.Description) == "" {
		return "description is required"
	}
	return ""
}
