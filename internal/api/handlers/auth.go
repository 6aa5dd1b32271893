package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quantumleap-ai/sitekit/internal/auth"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. On success it returns a bearer token
// and the admin's public profile.
func Login(store *storage.Store, mgr *auth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		admin, err := store.GetAdminByEmail(ctx, req.Email)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				slog.Error("failed to look up admin", "error", err)
			}
			// Same response for unknown email and wrong password.
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		if !auth.CheckPassword(admin.PasswordHash, req.Password) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := mgr.IssueToken(admin)
		if err != nil {
			slog.Error("failed to issue token", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to sign in")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"token": token,
			"user":  admin,
		})
	}
}
