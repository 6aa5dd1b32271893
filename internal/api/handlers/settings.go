package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quantumleap-ai/sitekit/internal/models"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

type settingsResponse struct {
	Settings   *models.SiteSettings `json:"settings"`
	HeroSlides []models.HeroSlide   `json:"heroSlides"`
}

// GetSettings handles GET /api/settings. It returns the site settings and
// the hero slide set in one payload for the public site.
func GetSettings(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		settings, err := store.GetSettings(ctx)
		if err != nil {
			slog.Error("failed to get settings", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load settings")
			return
		}

		slides, err := store.GetHeroSlides(ctx)
		if err != nil {
			slog.Error("failed to get hero slides", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load settings")
			return
		}

		writeJSON(w, http.StatusOK, settingsResponse{Settings: settings, HeroSlides: slides})
	}
}

type updateSettingsRequest struct {
	Settings   *models.SiteSettings `json:"settings"`
	HeroSlides *[]models.HeroSlide  `json:"heroSlides"`
}

// UpdateSettings handles PUT /api/settings. Either section may be omitted;
// a present heroSlides array replaces the slide set wholesale.
func UpdateSettings(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req updateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if req.Settings != nil {
			if msg := validateSettings(req.Settings); msg != "" {
				writeError(w, http.StatusBadRequest, msg)
				return
			}
			if _, err := store.SaveSettings(ctx, req.Settings); err != nil {
				slog.Error("failed to save settings", "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to save settings")
				return
			}
		}

		if req.HeroSlides != nil {
			if _, err := store.ReplaceHeroSlides(ctx, *req.HeroSlides); err != nil {
				slog.Error("failed to save hero slides", "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to save hero slides")
				return
			}
		}

		respondWithSettings(ctx, store, w)
	}
}

// UpdateGeneralSettings handles PUT /api/settings/general with the settings
// object alone.
func UpdateGeneralSettings(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var settings models.SiteSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := validateSettings(&settings); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		if _, err := store.SaveSettings(ctx, &settings); err != nil {
			slog.Error("failed to save settings", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save settings")
			return
		}

		respondWithSettings(ctx, store, w)
	}
}

// UpdateHeroSlides handles PUT /api/settings/hero with the slide array alone.
func UpdateHeroSlides(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var slides []models.HeroSlide
		if err := json.NewDecoder(r.Body).Decode(&slides); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		saved, err := store.ReplaceHeroSlides(ctx, slides)
		if err != nil {
			slog.Error("failed to save hero slides", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save hero slides")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"heroSlides": saved})
	}
}

func validateSettings(s *models.SiteSettings) string {
	if strings.TrimSpace(s.CompanyName) == "" {
		return "companyName is required"
	}
	if strings.TrimSpace(s.HeroHeadline) == "" {
		return "heroHeadline is required"
	}
	if strings.TrimSpace(s.ContactEmail) == "" {
		return "contactEmail is required"
	}
	return ""
}

// respondWithSettings reloads and writes the combined settings payload after
// a successful save.
func respondWithSettings(ctx context.Context, store *storage.Store, w http.ResponseWriter) {
	settings, err := store.GetSettings(ctx)
	if err != nil {
		slog.Error("failed to reload settings", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	slides, err := store.GetHeroSlides(ctx)
	if err != nil {
		slog.Error("failed to reload hero slides", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Settings: settings, HeroSlides: slides})
}
