package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quantumleap-ai/sitekit/internal/newsroom"
)

type stubSource struct {
	articles []newsroom.Article
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, _ []string) ([]newsroom.Article, error) {
	return s.articles, nil
}

func TestGetNews(t *testing.T) {
	agg := newsroom.NewAggregator([]newsroom.Source{
		&stubSource{articles: []newsroom.Article{
			{ID: "stub-1", Source: "stub", Title: "AI breakthrough", URL: "https://example.com/1"},
		}},
	}, 12)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/ai/news?keywords=ai", nil)
	w := httptest.NewRecorder()

	GetNews(agg)(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Articles []newsroom.Article `json:"articles"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].Title != "AI breakthrough" {
		t.Errorf("articles = %v", resp.Articles)
	}
}

func TestGetNews_NoSourcesReachable(t *testing.T) {
	agg := newsroom.NewAggregator([]newsroom.Source{&stubSource{}}, 12)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/ai/news", nil)
	w := httptest.NewRecorder()

	GetNews(agg)(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestGetModels(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models": [{"name": "llama3.2:1b", "size": 1300000000, "digest": "abc"}]}`))
	}))
	defer upstream.Close()

	catalog := newsroom.NewCatalog(newsroom.NewResolver(newsroom.HostConfig{Primary: upstream.URL}))

	r := httptest.NewRequest(http.MethodGet, "/api/admin/ai/models", nil)
	w := httptest.NewRecorder()

	GetModels(catalog)(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Models []newsroom.Model `json:"models"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(resp.Models) != 1 || resp.Models[0].Name != "llama3.2:1b" {
		t.Errorf("models = %v", resp.Models)
	}
}

func TestGetModels_EmptyCatalog(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models": []}`))
	}))
	defer upstream.Close()

	catalog := newsroom.NewCatalog(newsroom.NewResolver(newsroom.HostConfig{Primary: upstream.URL}))

	r := httptest.NewRequest(http.MethodGet, "/api/admin/ai/models", nil)
	w := httptest.NewRecorder()

	GetModels(catalog)(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", w.Code, w.Body.String())
	}
}

func TestRewriteArticle_MissingInput(t *testing.T) {
	rewriter := newsroom.NewRewriter(newsroom.NewResolver(newsroom.HostConfig{}), "")

	body := `{"title": "", "content": ""}`
	r := httptest.NewRequest(http.MethodPost, "/api/admin/ai/rewrite", strings.NewReader(body))
	w := httptest.NewRecorder()

	RewriteArticle(rewriter)(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestRewriteArticle_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "{\"title\": \"New Title\", \"summary\": \"Short.\", \"markdown\": \"## Body\"}"}`))
	}))
	defer upstream.Close()

	rewriter := newsroom.NewRewriter(newsroom.NewResolver(newsroom.HostConfig{Primary: upstream.URL}), "llama3.2:1b")

	body := `{"title": "Old", "content": "Some source text."}`
	r := httptest.NewRequest(http.MethodPost, "/api/admin/ai/rewrite", strings.NewReader(body))
	w := httptest.NewRecorder()

	RewriteArticle(rewriter)(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var result newsroom.RewriteResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if result.Title != "New Title" || result.Markdown != "## Body" {
		t.Errorf("result = %+v", result)
	}
}

func TestImportArticle_Validation(t *testing.T) {
	handler := ImportArticle()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing url", body: `{"url": ""}`},
		{name: "bad scheme", body: `{"url": "ftp://example.com/doc"}`},
		{name: "not a url", body: `{"url": "::"}`},
		{name: "invalid json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/admin/ai/import", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}
