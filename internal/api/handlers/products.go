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

func validateProduct(p *models.Product) string {
	if strings.TrimSpace(p.Title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		return "description is required"
	}
	if strings.TrimSpace(p.LongDescription) == "" {
		return "longDescription is required"
	}
	return ""
}

// GetProducts handles GET /api/products.
func GetProducts(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := store.GetProducts(r.Context())
		if err != nil {
			slog.Error("failed to get products", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load products")
			return
		}
		writeJSON(w, http.StatusOK, products)
	}
}

// GetProduct handles GET /api/products/{id}.
func GetProduct(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		product, err := store.GetProduct(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Product not found")
				return
			}
			slog.Error("failed to get product", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load product")
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

// CreateProduct handles POST /api/products.
func CreateProduct(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product models.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := validateProduct(&product); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		created, err := store.CreateProduct(r.Context(), &product)
		if err != nil {
			slog.Error("failed to create product", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create product")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateProduct handles PUT /api/products/{id}. Features and images are
// replaced with the submitted lists.
func UpdateProduct(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		var product models.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if msg := validateProduct(&product); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		product.ID = id

		updated, err := store.UpdateProduct(r.Context(), &product)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Product not found")
				return
			}
			slog.Error("failed to update product", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update product")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteProduct handles DELETE /api/products/{id}.
func DeleteProduct(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		if err := store.DeleteProduct(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Product not found")
				return
			}
			slog.Error("failed to delete product", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete product")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
