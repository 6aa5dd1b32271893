package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

func TestGetSettings_ReturnsSeededDefaults(t *testing.T) {
	store := newTestStore(t)
	handler := GetSettings(store)

	r := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	w := httptest.NewRecorder()

	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Settings   models.SiteSettings `json:"settings"`
		HeroSlides []models.HeroSlide  `json:"heroSlides"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Settings.CompanyName == "" {
		t.Error("expected seeded company name")
	}
	if resp.HeroSlides == nil {
		t.Error("heroSlides should be an array, not null")
	}
}

func TestUpdateSettings_BothSections(t *testing.T) {
	store := newTestStore(t)
	handler := UpdateSettings(store)

	body := `{
		"settings": {
			"companyName": "New Name",
			"heroHeadline": "New Headline",
			"contactEmail": "new@example.com",
			"blogPreviewLimit": 4,
			"productPreviewLimit": 2,
			"backgroundPattern": "mesh"
		},
		"heroSlides": [
			{"title": "Slide", "subtitle": "One", "order": 0}
		]
	}`
	r := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Settings   models.SiteSettings `json:"settings"`
		HeroSlides []models.HeroSlide  `json:"heroSlides"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Settings.CompanyName != "New Name" {
		t.Errorf("companyName = %q", resp.Settings.CompanyName)
	}
	if len(resp.HeroSlides) != 1 || resp.HeroSlides[0].Title != "Slide" {
		t.Errorf("heroSlides = %v", resp.HeroSlides)
	}
}

func TestUpdateSettings_ValidationFailure(t *testing.T) {
	store := newTestStore(t)
	handler := UpdateSettings(store)

	body := `{"settings": {"companyName": "", "heroHeadline": "H", "contactEmail": "a@b.c"}}`
	r := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestUpdateHeroSlides_ReplacesSet(t *testing.T) {
	store := newTestStore(t)
	handler := UpdateHeroSlides(store)

	body := `[
		{"title": "A", "subtitle": "a"},
		{"title": "B", "subtitle": "b", "order": 1}
	]`
	r := httptest.NewRequest(http.MethodPut, "/api/settings/hero", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		HeroSlides []models.HeroSlide `json:"heroSlides"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.HeroSlides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(resp.HeroSlides))
	}
}
