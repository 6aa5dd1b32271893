package handlers

import (
	"log/slog"
	"net/http"

	"github.com/quantumleap-ai/sitekit/internal/storage"
)

// Health handles GET /api/health. It pings the database so load balancers
// see a failing dependency, not just a live process.
func Health(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DB().PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
