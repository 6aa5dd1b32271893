package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quantumleap-ai/sitekit/internal/auth"
	"github.com/quantumleap-ai/sitekit/internal/models"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

const minPasswordLength = 8

// currentAdmin resolves the authenticated admin from the request context.
func currentAdmin(r *http.Request, store *storage.Store) (*models.AdminUser, error) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		return nil, errors.New("no authenticated admin on request")
	}
	return store.GetAdmin(r.Context(), claims.AdminID)
}

// GetMe handles GET /api/admin/users/me.
func GetMe(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := currentAdmin(r, store)
		if err != nil {
			slog.Error("failed to load current admin", "error", err)
			writeError(w, http.StatusUnauthorized, "Account no longer exists")
			return
		}
		writeJSON(w, http.StatusOK, admin)
	}
}

type updateMeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UpdateMe handles PUT /api/admin/users/me, changing email and display name.
func UpdateMe(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := currentAdmin(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Account no longer exists")
			return
		}

		var req updateMeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		req.Name = strings.TrimSpace(req.Name)
		if req.Email == "" || req.Name == "" {
			writeError(w, http.StatusBadRequest, "Email and name are required")
			return
		}

		taken, err := store.AdminEmailTaken(r.Context(), req.Email, admin.ID)
		if err != nil {
			slog.Error("failed to check admin email", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		if taken {
			writeError(w, http.StatusConflict, "That email is already in use")
			return
		}

		updated, err := store.UpdateAdminProfile(r.Context(), admin.ID, req.Email, req.Name)
		if err != nil {
			slog.Error("failed to update admin profile", "id", admin.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangeMyPassword handles PUT /api/admin/users/me/password. The current
// password must be supplied and verified before the hash is replaced.
func ChangeMyPassword(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := currentAdmin(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Account no longer exists")
			return
		}

		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if len(req.NewPassword) < minPasswordLength {
			writeError(w, http.StatusBadRequest, "New password must be at least 8 characters")
			return
		}
		if !auth.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
			writeError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to change password")
			return
		}
		if err := store.UpdateAdminPassword(r.Context(), admin.ID, hash); err != nil {
			slog.Error("failed to update password", "id", admin.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to change password")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
	}
}

// GetAdmins handles GET /api/admin/users.
func GetAdmins(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admins, err := store.GetAdmins(r.Context())
		if err != nil {
			slog.Error("failed to list admins", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load admin users")
			return
		}
		writeJSON(w, http.StatusOK, admins)
	}
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CreateAdmin handles POST /api/admin/users.
func CreateAdmin(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAdminRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		req.Name = strings.TrimSpace(req.Name)
		if req.Email == "" || req.Name == "" {
			writeError(w, http.StatusBadRequest, "Email and name are required")
			return
		}
		if len(req.Password) < minPasswordLength {
			writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}

		taken, err := store.AdminEmailTaken(r.Context(), req.Email, 0)
		if err != nil {
			slog.Error("failed to check admin email", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create admin user")
			return
		}
		if taken {
			writeError(w, http.StatusConflict, "That email is already in use")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create admin user")
			return
		}

		created, err := store.CreateAdmin(r.Context(), &models.AdminUser{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: hash,
		})
		if err != nil {
			slog.Error("failed to create admin", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create admin user")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// DeleteAdmin handles DELETE /api/admin/users/{id}. Admins cannot delete
// their own account, and the last account is always kept.
func DeleteAdmin(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid admin ID")
			return
		}

		if claims, ok := auth.FromContext(r.Context()); ok && claims.AdminID == id {
			writeError(w, http.StatusBadRequest, "You cannot delete your own account")
			return
		}

		if err := store.DeleteAdmin(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				writeError(w, http.StatusNotFound, "Admin user not found")
			case errors.Is(err, storage.ErrLastAdmin):
				writeError(w, http.StatusBadRequest, "Cannot delete the last admin account")
			default:
				slog.Error("failed to delete admin", "id", id, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to delete admin user")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
