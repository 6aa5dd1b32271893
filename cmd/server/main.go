package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantumleap-ai/sitekit/internal/api"
	"github.com/quantumleap-ai/sitekit/internal/auth"
	"github.com/quantumleap-ai/sitekit/internal/config"
	"github.com/quantumleap-ai/sitekit/internal/mailer"
	"github.com/quantumleap-ai/sitekit/internal/newsroom"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	dataDir := flag.String("data-dir", "./data", "path to data directory")
	flag.Parse()

	// Load .env if present; secrets usually arrive this way in development.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure data directory exists.
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open database with WAL mode and pragmas.
	db, err := storage.OpenDatabase(filepath.Join(*dataDir, "site.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run schema migrations.
	if err := storage.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Create store and seed the default settings row and bootstrap admin.
	store := storage.NewStore(db)
	passwordHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		slog.Error("failed to hash bootstrap admin password", "error", err)
		os.Exit(1)
	}
	bootstrap := storage.BootstrapAdmin{
		Email:        cfg.Admin.Email,
		Name:         "Administrator",
		PasswordHash: passwordHash,
	}
	if err := store.SeedDefaults(context.Background(), bootstrap); err != nil {
		slog.Error("failed to seed defaults", "error", err)
		os.Exit(1)
	}

	authMgr := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	mail := mailer.New(mailer.Config{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.From,
	})
	if !mail.IsConfigured() {
		slog.Warn("SMTP is not configured, the contact form will be disabled")
	}

	// Newsroom components share one host resolver built from config.
	resolver := newsroom.NewResolver(newsroom.HostConfig{
		Primary:    cfg.Newsroom.Host,
		Fallbacks:  cfg.Newsroom.HostFallbacks,
		BridgeHost: cfg.Newsroom.BridgeHost,
	})

	sources := []newsroom.Source{
		newsroom.NewHackerNewsSource(cfg.Newsroom.MinWords),
		newsroom.NewRedditSource("artificial", cfg.Newsroom.MinWords),
	}
	if len(cfg.Newsroom.RSSFeeds) > 0 {
		sources = append(sources, newsroom.NewRSSSource(cfg.Newsroom.RSSFeeds, cfg.Newsroom.MinWords))
	}

	deps := api.Deps{
		Store:        store,
		Auth:         authMgr,
		Mailer:       mail,
		Aggregator:   newsroom.NewAggregator(sources, cfg.Newsroom.HeadlineLimit),
		Rewriter:     newsroom.NewRewriter(resolver, cfg.Newsroom.Model),
		Catalog:      newsroom.NewCatalog(resolver),
		ContactEmail: cfg.Contact.FallbackEmail,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
