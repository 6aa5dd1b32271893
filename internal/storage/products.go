package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

// GetProducts returns all products with their features and images, ordered
// by display position.
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, long_description, page_content,
				display_order, created_at, updated_at
		 FROM products ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	for i := range products {
		if err := s.loadProductChildren(ctx, &products[i]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// GetProduct returns one product by ID with its features and images, or
// ErrNotFound.
func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, long_description, page_content,
				display_order, created_at, updated_at
		 FROM products WHERE id = ?`, id)
	product, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadProductChildren(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateProduct inserts a product with its features and images in one
// transaction and returns the stored row.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning product transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`INSERT INTO products (title, description, long_description, page_content, display_order)
		 VALUES (?, ?, ?, ?, ?)`,
		product.Title, product.Description, product.LongDescription,
		nullable(product.PageContent), product.DisplayOrder)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting product id: %w", err)
	}

	if err := insertProductChildren(ctx, tx, id, product.Features, product.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing product: %w", err)
	}
	return s.GetProduct(ctx, id)
}

// UpdateProduct overwrites a product and replaces its features and images
// wholesale. Returns ErrNotFound when the ID does not exist.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning product transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`UPDATE products
			SET title = ?, description = ?, long_description = ?,
				page_content = ?, display_order = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		product.Title, product.Description, product.LongDescription,
		nullable(product.PageContent), product.DisplayOrder, product.ID)
	if err != nil {
		return nil, fmt.Errorf("updating product %d: %w", product.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_features WHERE product_id = ?`, product.ID); err != nil {
		return nil, fmt.Errorf("clearing product features: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = ?`, product.ID); err != nil {
		return nil, fmt.Errorf("clearing product images: %w", err)
	}
	if err := insertProductChildren(ctx, tx, product.ID, product.Features, product.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing product update: %w", err)
	}
	return s.GetProduct(ctx, product.ID)
}

// DeleteProduct removes a product by ID; child rows cascade. Returns
// ErrNotFound when absent.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

func insertProductChildren(ctx context.Context, tx *sql.Tx, productID int64, features, images []string) error {
	for i, feature := range features {
		if feature == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_features (product_id, feature_text, position) VALUES (?, ?, ?)`,
			productID, feature, i); err != nil {
			return fmt.Errorf("inserting product feature: %w", err)
		}
	}
	for i, imageURL := range images {
		if imageURL == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_images (product_id, image_url, position) VALUES (?, ?, ?)`,
			productID, imageURL, i); err != nil {
			return fmt.Errorf("inserting product image: %w", err)
		}
	}
	return nil
}

func (s *Store) loadProductChildren(ctx context.Context, product *models.Product) error {
	features, err := s.stringColumn(ctx,
		`SELECT feature_text FROM product_features WHERE product_id = ? ORDER BY position ASC`,
		product.ID)
	if err != nil {
		return fmt.Errorf("loading features for product %d: %w", product.ID, err)
	}
	images, err := s.stringColumn(ctx,
		`SELECT image_url FROM product_images WHERE product_id = ? ORDER BY position ASC`,
		product.ID)
	if err != nil {
		return fmt.Errorf("loading images for product %d: %w", product.ID, err)
	}
	product.Features = features
	product.Images = images
	return nil
}

// stringColumn runs a single-column query and collects the values.
func (s *Store) stringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanProduct(scan func(dest ...any) error) (*models.Product, error) {
	var (
		product     models.Product
		pageContent sql.NullString
		createdAt   string
		updatedAt   string
	)
	err := scan(&product.ID, &product.Title, &product.Description,
		&product.LongDescription, &pageContent, &product.DisplayOrder,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning product row: %w", err)
	}
	product.PageContent = pageContent.String
	product.CreatedAt = parseTime(createdAt)
	product.UpdatedAt = parseTime(updatedAt)
	return &product, nil
}
