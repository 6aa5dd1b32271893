package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

// GetServices returns all services ordered by display position.
func (s *Store) GetServices(ctx context.Context) ([]models.Service, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, color, icon_key, display_order, created_at, updated_at
		 FROM services ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying services: %w", err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		svc, err := scanService(rows.Scan)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating services: %w", err)
	}
	return services, nil
}

// CreateService inserts a service and returns the stored row.
func (s *Store) CreateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO services (title, description, color, icon_key, display_order)
		 VALUES (?, ?, ?, ?, ?)`,
		svc.Title, svc.Description, nullable(svc.Color), nullable(svc.IconKey), svc.DisplayOrder)
	if err != nil {
		return nil, fmt.Errorf("creating service: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting service id: %w", err)
	}
	return s.GetService(ctx, id)
}

// GetService returns one service by ID, or ErrNotFound.
func (s *Store) GetService(ctx context.Context, id int64) (*models.Service, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, color, icon_key, display_order, created_at, updated_at
		 FROM services WHERE id = ?`, id)
	svc, err := scanService(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return svc, err
}

// UpdateService overwrites a service's fields. Returns ErrNotFound when the
// ID does not exist.
func (s *Store) UpdateService(ctx context.Context, svc *models.Service) (*models.Service, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE services
			SET title = ?, description = ?, color = ?, icon_key = ?,
				display_order = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		svc.Title, svc.Description, nullable(svc.Color), nullable(svc.IconKey),
		svc.DisplayOrder, svc.ID)
	if err != nil {
		return nil, fmt.Errorf("updating service %d: %w", svc.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetService(ctx, svc.ID)
}

// DeleteService removes a service by ID, returning ErrNotFound when absent.
func (s *Store) DeleteService(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting service %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanService(scan func(dest ...any) error) (*models.Service, error) {
	var (
		svc       models.Service
		color     sql.NullString
		iconKey   sql.NullString
		createdAt string
		updatedAt string
	)
	err := scan(&svc.ID, &svc.Title, &svc.Description, &color, &iconKey,
		&svc.DisplayOrder, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning service row: %w", err)
	}
	svc.Color = color.String
	svc.IconKey = iconKey.String
	svc.CreatedAt = parseTime(createdAt)
	svc.UpdatedAt = parseTime(updatedAt)
	return &svc, nil
}
