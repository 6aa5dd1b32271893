package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/quantumleap-ai/sitekit/internal/models"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

func servicesRouter(store *storage.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/services", GetServices(store))
	r.Post("/api/services", CreateService(store))
	r.Put("/api/services/{id}", UpdateService(store))
	r.Delete("/api/services/{id}", DeleteService(store))
	return r
}

func TestServiceHandlers_CRUD(t *testing.T) {
	router := servicesRouter(newTestStore(t))

	// Create.
	body := `{
		"title": "LLM Integration",
		"description": "Wire language models into your product",
		"color": "#7c3aed",
		"iconKey": "brain",
		"displayOrder": 2
	}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", w.Code, w.Body.String())
	}

	var created models.Service
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decoding created service: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected created service ID")
	}
	if created.IconKey != "brain" || created.DisplayOrder != 2 {
		t.Errorf("created = %+v", created)
	}

	// List.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed []models.Service
	if err := json.NewDecoder(w.Body).Decode(&listed); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d services, want 1", len(listed))
	}

	// Update.
	update := `{"title": "LLM Integration", "description": "Updated copy", "displayOrder": 1}`
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/services/1", strings.NewReader(update)))
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d; body: %s", w.Code, w.Body.String())
	}
	var updated models.Service
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("decoding updated service: %v", err)
	}
	if updated.Description != "Updated copy" {
		t.Errorf("description = %q", updated.Description)
	}

	// Delete.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/services/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	// Gone.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/services/1", strings.NewReader(update)))
	if w.Code != http.StatusNotFound {
		t.Fatalf("update-after-delete status = %d, want 404", w.Code)
	}
}

func TestServiceHandlers_Validation(t *testing.T) {
	router := servicesRouter(newTestStore(t))

	tests := []struct {
		name string
		body string
	}{
		{name: "missing title", body: `{"description": "d"}`},
		{name: "missing description", body: `{"title": "t"}`},
		{name: "invalid json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(tt.body)))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestServiceHandlers_NotFound(t *testing.T) {
	router := servicesRouter(newTestStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/services/999", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("delete status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/services/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
}
