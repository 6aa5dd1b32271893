package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

func TestPostCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	published := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	created, err := store.CreatePost(ctx, &models.Post{
		Title:       "Launching the platform",
		Excerpt:     "A short teaser.",
		Content:     "## Hello\n\nFull body in markdown.",
		Category:    "Announcements",
		Tags:        []string{"launch", "platform"},
		PublishedAt: &published,
	})
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected created post to have an ID")
	}
	if len(created.Tags) != 2 || created.Tags[0] != "launch" {
		t.Errorf("Tags = %v, want [launch platform]", created.Tags)
	}
	if created.PublishedAt == nil || !created.PublishedAt.Equal(published) {
		t.Errorf("PublishedAt = %v, want %v", created.PublishedAt, published)
	}

	got, err := store.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPost error: %v", err)
	}
	if got.Title != created.Title {
		t.Errorf("Title = %q, want %q", got.Title, created.Title)
	}

	got.Title = "Launching the platform, revised"
	got.Tags = nil
	updated, err := store.UpdatePost(ctx, got)
	if err != nil {
		t.Fatalf("UpdatePost error: %v", err)
	}
	if updated.Title != "Launching the platform, revised" {
		t.Errorf("updated Title = %q", updated.Title)
	}
	if updated.Tags == nil || len(updated.Tags) != 0 {
		t.Errorf("updated Tags = %v, want empty non-nil slice", updated.Tags)
	}

	if err := store.DeletePost(ctx, created.ID); err != nil {
		t.Fatalf("DeletePost error: %v", err)
	}
	if _, err := store.GetPost(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPost after delete = %v, want ErrNotFound", err)
	}
}

func TestGetPosts_OrderedPublishedFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := store.CreatePost(ctx, &models.Post{Title: "Draft", Excerpt: "e", Content: "c"}); err != nil {
		t.Fatalf("creating draft: %v", err)
	}
	if _, err := store.CreatePost(ctx, &models.Post{Title: "Older", Excerpt: "e", Content: "c", PublishedAt: &older}); err != nil {
		t.Fatalf("creating older: %v", err)
	}
	if _, err := store.CreatePost(ctx, &models.Post{Title: "Newer", Excerpt: "e", Content: "c", PublishedAt: &newer}); err != nil {
		t.Fatalf("creating newer: %v", err)
	}

	posts, err := store.GetPosts(ctx)
	if err != nil {
		t.Fatalf("GetPosts error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	wantOrder := []string{"Newer", "Older", "Draft"}
	for i, want := range wantOrder {
		if posts[i].Title != want {
			t.Errorf("posts[%d].Title = %q, want %q", i, posts[i].Title, want)
		}
	}
}

func TestUpdatePost_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdatePost(context.Background(), &models.Post{
		ID: 999, Title: "ghost", Excerpt: "e", Content: "c",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdatePost(missing) = %v, want ErrNotFound", err)
	}
}

func TestDeletePost_NotFound(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeletePost(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeletePost(missing) = %v, want ErrNotFound", err)
	}
}
