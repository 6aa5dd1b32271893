package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/quantumleap-ai/sitekit/internal/newsroom"
)

// GetNews handles GET /api/admin/ai/news?keywords=a,b. It returns the
// current rotation of aggregated headlines.
func GetNews(agg *newsroom.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var keywords []string
		if raw := r.URL.Query().Get("keywords"); raw != "" {
			keywords = strings.Split(raw, ",")
		}

		articles, err := agg.Headlines(r.Context(), keywords)
		if err != nil {
			if errors.Is(err, newsroom.ErrNoSources) {
				writeError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
			slog.Error("failed to aggregate news", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load news")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
	}
}

type rewriteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Model    string `json:"model"`
	Tone     string `json:"tone"`
	MaxWords int    `json:"maxWords"`
}

// RewriteArticle handles POST /api/admin/ai/rewrite. It asks the configured
// model to rewrite the submitted article and returns the structured result.
func RewriteArticle(rewriter *newsroom.Rewriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rewriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		result, err := rewriter.Rewrite(r.Context(), newsroom.RewriteRequest{
			Title:    req.Title,
			Content:  req.Content,
			Model:    req.Model,
			Tone:     req.Tone,
			MaxWords: req.MaxWords,
		})
		if err != nil {
			if errors.Is(err, newsroom.ErrMissingInput) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			slog.Error("rewrite failed", "error", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// GetModels handles GET /api/admin/ai/models, listing models available on
// the first reachable Ollama host.
func GetModels(catalog *newsroom.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models, err := catalog.ListModels(r.Context())
		if err != nil {
			if errors.Is(err, newsroom.ErrNoModels) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			slog.Error("failed to list models", "error", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"models": models})
	}
}

type importRequest struct {
	URL string `json:"url"`
}

// ImportArticle handles POST /api/admin/ai/import. It pulls readable text
// from a URL so the editor can feed it to the rewrite form.
func ImportArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req importRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		req.URL = strings.TrimSpace(req.URL)
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		if parsed, err := url.Parse(req.URL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			writeError(w, http.StatusBadRequest, "url must be an http(s) address")
			return
		}

		article, err := newsroom.ExtractArticle(r.Context(), req.URL)
		if err != nil {
			slog.Error("failed to extract article", "url", req.URL, "error", err)
			writeError(w, http.StatusBadGateway, "Could not extract readable content from that URL")
			return
		}

		writeJSON(w, http.StatusOK, article)
	}
}
