package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

// encodeTags serializes a tag list as a JSON array for storage in a TEXT
// column. Nil encodes as an empty array.
func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

// decodeTags parses a stored JSON tag array, returning an empty slice for
// malformed or empty values.
func decodeTags(raw string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// GetProjects returns all portfolio projects ordered by display position.
func (s *Store) GetProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, category, description, tags, image_url, display_order
		 FROM projects ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var (
			project  models.Project
			tags     string
			imageURL sql.NullString
		)
		if err := rows.Scan(&project.ID, &project.Title, &project.Category,
			&project.Description, &tags, &imageURL, &project.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		project.Tags = decodeTags(tags)
		project.ImageURL = imageURL.String
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project by ID, or ErrNotFound.
func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	var (
		project  models.Project
		tags     string
		imageURL sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, category, description, tags, image_url, display_order
		 FROM projects WHERE id = ?`, id).
		Scan(&project.ID, &project.Title, &project.Category, &project.Description,
			&tags, &imageURL, &project.DisplayOrder)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying project %d: %w", id, err)
	}
	project.Tags = decodeTags(tags)
	project.ImageURL = imageURL.String
	return &project, nil
}

// CreateProject inserts a project and returns the stored row.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (title, category, description, tags, image_url, display_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		project.Title, project.Category, project.Description,
		encodeTags(project.Tags), nullable(project.ImageURL), project.DisplayOrder)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting project id: %w", err)
	}
	return s.GetProject(ctx, id)
}

// UpdateProject overwrites a project's fields, returning ErrNotFound when
// the ID does not exist.
func (s *Store) UpdateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects
			SET title = ?, category = ?, description = ?, tags = ?,
				image_url = ?, display_order = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		project.Title, project.Category, project.Description,
		encodeTags(project.Tags), nullable(project.ImageURL),
		project.DisplayOrder, project.ID)
	if err != nil {
		return nil, fmt.Errorf("updating project %d: %w", project.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetProject(ctx, project.ID)
}

// DeleteProject removes a project by ID, returning ErrNotFound when absent.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}
