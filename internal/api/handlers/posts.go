package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/quantumleap-ai/sitekit/internal/models"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

type postRequest struct {
	Title       string  `json:"title"`
	Excerpt     string  `json:"excerpt"`
	Content     string  `json:"content"`
	Category    string  `json:"category"`
	Tags        tagList `json:"tags"`
	ImageURL    string  `json:"imageUrl"`
	PublishedAt *string `json:"publishedAt"`
}

func (p *postRequest) validate() string {
	if strings.TrimSpace(p.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(p.Excerpt) == "" {
		return "excerpt is required"
	}
	if strings.TrimSpace(p.Content) == "" {
		return "content is required"
	}
	return ""
}

func (p *postRequest) toModel(id int64) (*models.Post, error) {
	post := &models.Post{
		ID:       id,
		Title:    p.Title,
		Excerpt:  p.Excerpt,
		Content:  p.Content,
		Category: p.Category,
		Tags:     p.Tags,
		ImageURL: p.ImageURL,
	}
	if p.PublishedAt != nil && *p.PublishedAt != "" {
		t, err := time.Parse(time.RFC3339, *p.PublishedAt)
		if err != nil {
			return nil, errors.New("publishedAt must be an RFC 3339 timestamp")
		}
		post.PublishedAt = &t
	}
	return post, nil
}

// GetPosts handles GET /api/posts.
func GetPosts(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := store.GetPosts(r.Context())
		if err != nil {
			slog.Error("failed to get posts", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load posts")
			return
		}
		writeJSON(w, http.StatusOK, posts)
	}
}

// GetPost handles GET /api/posts/{id}.
func GetPost(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid post ID")
			return
		}

		post, err := store.GetPost(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Post not found")
				return
			}
			slog.Error("failed to get post", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load post")
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// CreatePost handles POST /api/posts.
func CreatePost(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		post, err := req.toModel(0)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		created, err := store.CreatePost(r.Context(), post)
		if err != nil {
			slog.Error("failed to create post", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create post")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdatePost handles PUT /api/posts/{id}.
func UpdatePost(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid post ID")
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		post, err := req.toModel(id)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := store.UpdatePost(r.Context(), post)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Post not found")
				return
			}
			slog.Error("failed to update post", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update post")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeletePost handles DELETE /api/posts/{id}.
func DeletePost(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid post ID")
			return
		}

		if err := store.DeletePost(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Post not found")
				return
			}
			slog.Error("failed to delete post", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete post")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
