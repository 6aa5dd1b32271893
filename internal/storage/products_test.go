package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

func TestProductCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateProduct(ctx, &models.Product{
		Title:           "Insight Engine",
		Description:     "Search across everything.",
		LongDescription: "A longer pitch for the product page.",
		DisplayOrder:    1,
		Features:        []string{"Semantic search", "Access controls"},
		Images:          []string{"/img/one.png", "/img/two.png"},
	})
	if err != nil {
		t.Fatalf("CreateProduct error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected created product to have an ID")
	}
	if !reflect.DeepEqual(created.Features, []string{"Semantic search", "Access controls"}) {
		t.Errorf("Features = %v", created.Features)
	}
	if !reflect.DeepEqual(created.Images, []string{"/img/one.png", "/img/two.png"}) {
		t.Errorf("Images = %v", created.Images)
	}

	// Update replaces the child lists wholesale.
	created.Features = []string{"Semantic search"}
	created.Images = nil
	updated, err := store.UpdateProduct(ctx, created)
	if err != nil {
		t.Fatalf("UpdateProduct error: %v", err)
	}
	if !reflect.DeepEqual(updated.Features, []string{"Semantic search"}) {
		t.Errorf("updated Features = %v", updated.Features)
	}
	if len(updated.Images) != 0 {
		t.Errorf("updated Images = %v, want empty", updated.Images)
	}

	if err := store.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct error: %v", err)
	}
	if _, err := store.GetProduct(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetProduct after delete = %v, want ErrNotFound", err)
	}

	// Cascade removed the child rows too.
	var orphans int
	if err := store.DB().QueryRow(
		`SELECT COUNT(*) FROM product_features WHERE product_id = ?`, created.ID,
	).Scan(&orphans); err != nil {
		t.Fatalf("counting orphan features: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected 0 orphan features, got %d", orphans)
	}
}

func TestGetProducts_OrderedByDisplayOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, p := range []models.Product{
		{Title: "Third", Description: "d", LongDescription: "l", DisplayOrder: 3},
		{Title: "First", Description: "d", LongDescription: "l", DisplayOrder: 1},
		{Title: "Second", Description: "d", LongDescription: "l", DisplayOrder: 2},
	} {
		if _, err := store.CreateProduct(ctx, &p); err != nil {
			t.Fatalf("creating product %q: %v", p.Title, err)
		}
	}

	products, err := store.GetProducts(ctx)
	if err != nil {
		t.Fatalf("GetProducts error: %v", err)
	}
	wantOrder := []string{"First", "Second", "Third"}
	if len(products) != len(wantOrder) {
		t.Fatalf("expected %d products, got %d", len(wantOrder), len(products))
	}
	for i, want := range wantOrder {
		if products[i].Title != want {
			t.Errorf("products[%d].Title = %q, want %q", i, products[i].Title, want)
		}
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdateProduct(context.Background(), &models.Product{
		ID: 42, Title: "ghost", Description: "d", LongDescription: "l",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateProduct(missing) = %v, want ErrNotFound", err)
	}
}
