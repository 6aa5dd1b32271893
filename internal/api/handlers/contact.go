package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/quantumleap-ai/sitekit/internal/mailer"
	"github.com/quantumleap-ai/sitekit/internal/models"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact handles POST /api/contact. The message is stored and mailed to
// the site's contact address, falling back to the configured recipient.
func Contact(store *storage.Store, m *mailer.Mailer, fallbackEmail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if !m.IsConfigured() {
			writeError(w, http.StatusInternalServerError, "Email service is not configured.")
			return
		}

		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.TrimSpace(req.Email)
		req.Message = strings.TrimSpace(req.Message)

		if req.Name == "" || req.Email == "" || req.Message == "" {
			writeError(w, http.StatusBadRequest, "Name, email, and message are required")
			return
		}
		if !emailPattern.MatchString(req.Email) {
			writeError(w, http.StatusBadRequest, "Please provide a valid email address.")
			return
		}
		if len(req.Message) < 10 {
			writeError(w, http.StatusBadRequest, "Please provide a bit more detail in your message.")
			return
		}

		recipient := fallbackEmail
		if settings, err := store.GetSettings(ctx); err == nil && settings.ContactEmail != "" {
			recipient = settings.ContactEmail
		}

		if _, err := store.CreateContactMessage(ctx, &models.ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		}); err != nil {
			// The mail is the primary delivery path; keep going.
			slog.Warn("failed to store contact message", "error", err)
		}

		if err := m.SendContactEmail(recipient, req.Name, req.Email, req.Message); err != nil {
			slog.Error("failed to send contact email", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to send your message. Please try again later.")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Thanks! Your message is on its way."})
	}
}
