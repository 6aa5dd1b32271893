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

func projectsRouter(store *storage.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/projects", GetProjects(store))
	r.Post("/api/projects", CreateProject(store))
	r.Put("/api/projects/{id}", UpdateProject(store))
	r.Delete("/api/projects/{id}", DeleteProject(store))
	return r
}

func TestProjectHandlers_CRUD(t *testing.T) {
	router := projectsRouter(newTestStore(t))

	// Create.
	body := `{
		"title": "Churn Radar",
		"category": "Machine Learning",
		"description": "Churn prediction for a telco",
		"tags": ["ml", "churn"],
		"imageUrl": "https://example.com/churn.png",
		"displayOrder": 3
	}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", w.Code, w.Body.String())
	}

	var created models.Project
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decoding created project: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected created project ID")
	}
	if len(created.Tags) != 2 || created.Tags[0] != "ml" {
		t.Errorf("tags = %v", created.Tags)
	}

	// List.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed []models.Project
	if err := json.NewDecoder(w.Body).Decode(&listed); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d projects, want 1", len(listed))
	}

	// Update.
	update := `{"title": "Churn Radar v2", "category": "Machine Learning", "description": "Churn prediction"}`
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/projects/1", strings.NewReader(update)))
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d; body: %s", w.Code, w.Body.String())
	}
	var updated models.Project
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("decoding updated project: %v", err)
	}
	if updated.Title != "Churn Radar v2" {
		t.Errorf("title = %q", updated.Title)
	}

	// Delete.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/projects/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	// Gone.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/projects/1", strings.NewReader(update)))
	if w.Code != http.StatusNotFound {
		t.Fatalf("update-after-delete status = %d, want 404", w.Code)
	}
}

func TestProjectHandlers_TagsFromString(t *testing.T) {
	router := projectsRouter(newTestStore(t))

	body := `{"title": "t", "category": "c", "description": "d", "tags": "nlp, search,\n ranking, "}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var created models.Project
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	want := []string{"nlp", "search", "ranking"}
	if len(created.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", created.Tags, want)
	}
	for i := range want {
		if created.Tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, created.Tags[i], want[i])
		}
	}
}

func TestProjectHandlers_Validation(t *testing.T) {
	router := projectsRouter(newTestStore(t))

	tests := []struct {
		name string
		body string
	}{
		{name: "missing title", body: `{"category": "c", "description": "d"}`},
		{name: "missing category", body: `{"title": "t", "description": "d"}`},
		{name: "missing description", body: `{"title": "t", "category": "c"}`},
		{name: "invalid json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(tt.body)))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestProjectHandlers_NotFound(t *testing.T) {
	router := projectsRouter(newTestStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/projects/999", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("delete status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/projects/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
}
