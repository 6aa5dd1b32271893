package storage

import (
	"context"
	"testing"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

func TestGetSettings_DefaultsWhenEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings error: %v", err)
	}
	if got.CompanyName != DefaultSettings.CompanyName {
		t.Errorf("CompanyName = %q, want %q", got.CompanyName, DefaultSettings.CompanyName)
	}
	if got.BlogPreviewLimit != DefaultSettings.BlogPreviewLimit {
		t.Errorf("BlogPreviewLimit = %d, want %d", got.BlogPreviewLimit, DefaultSettings.BlogPreviewLimit)
	}
	if got.BackgroundPattern != DefaultSettings.BackgroundPattern {
		t.Errorf("BackgroundPattern = %q, want %q", got.BackgroundPattern, DefaultSettings.BackgroundPattern)
	}
}

func TestSaveSettings_InsertThenUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := DefaultSettings
	first.CompanyName = "Acme Robotics"
	saved, err := store.SaveSettings(ctx, &first)
	if err != nil {
		t.Fatalf("SaveSettings (insert) error: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected saved settings to have an ID")
	}
	if saved.CompanyName != "Acme Robotics" {
		t.Errorf("CompanyName = %q, want %q", saved.CompanyName, "Acme Robotics")
	}

	second := *saved
	second.Tagline = "Robots for everyone"
	second.ContactPhone = ""
	updated, err := store.SaveSettings(ctx, &second)
	if err != nil {
		t.Fatalf("SaveSettings (update) error: %v", err)
	}
	if updated.ID != saved.ID {
		t.Errorf("update created a new row: id %d != %d", updated.ID, saved.ID)
	}
	if updated.Tagline != "Robots for everyone" {
		t.Errorf("Tagline = %q, want %q", updated.Tagline, "Robots for everyone")
	}
	if updated.ContactPhone != "" {
		t.Errorf("ContactPhone = %q, want empty", updated.ContactPhone)
	}

	// Still exactly one row.
	var count int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM site_settings`).Scan(&count); err != nil {
		t.Fatalf("counting settings rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 settings row, got %d", count)
	}
}

func TestReplaceHeroSlides(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	initial := []models.HeroSlide{
		{Title: "First", Subtitle: "One", Supertitle: "New"},
		{Title: "Second", Subtitle: "Two", Order: 5},
	}
	slides, err := store.ReplaceHeroSlides(ctx, initial)
	if err != nil {
		t.Fatalf("ReplaceHeroSlides error: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].Title != "First" || slides[1].Title != "Second" {
		t.Errorf("slide order = %q, %q, want First, Second", slides[0].Title, slides[1].Title)
	}

	// A replacement drops the old set entirely and skips invalid slides.
	replacement := []models.HeroSlide{
		{Title: "Only", Subtitle: "Slide"},
		{Title: "", Subtitle: "missing title"},
		{Title: "missing subtitle", Subtitle: ""},
	}
	slides, err = store.ReplaceHeroSlides(ctx, replacement)
	if err != nil {
		t.Fatalf("ReplaceHeroSlides (second) error: %v", err)
	}
	if len(slides) != 1 {
		t.Fatalf("expected 1 slide after replacement, got %d", len(slides))
	}
	if slides[0].Title != "Only" {
		t.Errorf("slide title = %q, want Only", slides[0].Title)
	}
}

func TestReplaceHeroSlides_EmptyClearsAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.ReplaceHeroSlides(ctx, []models.HeroSlide{{Title: "A", Subtitle: "B"}}); err != nil {
		t.Fatalf("seeding slides: %v", err)
	}

	slides, err := store.ReplaceHeroSlides(ctx, nil)
	if err != nil {
		t.Fatalf("ReplaceHeroSlides(nil) error: %v", err)
	}
	if len(slides) != 0 {
		t.Fatalf("expected 0 slides, got %d", len(slides))
	}
}
