package handlers

import (
	"context"
	"testing"

	"github.com/quantumleap-ai/sitekit/internal/auth"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

// newTestStore creates an in-memory SQLite store with migrations applied and
// defaults seeded. It registers a cleanup function to close the database
// when the test completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	store := storage.NewStore(db)
	hash, err := auth.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hashing bootstrap password: %v", err)
	}
	bootstrap := storage.BootstrapAdmin{
		Email:        "admin@example.com",
		Name:         "Administrator",
		PasswordHash: hash,
	}
	if err := store.SeedDefaults(context.Background(), bootstrap); err != nil {
		t.Fatalf("seeding defaults: %v", err)
	}

	return store
}
