package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

const postColumns = `id, title, excerpt, content, category, tags, image_url,
	published_at, created_at, updated_at`

// GetPosts returns all posts, most recently published first. Posts without a
// publication date sort last.
func (s *Store) GetPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 ORDER BY published_at IS NULL, published_at DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}
	return posts, nil
}

// GetPost returns one post by ID, or ErrNotFound.
func (s *Store) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	post, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return post, err
}

// CreatePost inserts a post and returns the stored row.
func (s *Store) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (title, excerpt, content, category, tags, image_url, published_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.Title, post.Excerpt, post.Content, nullable(post.Category),
		encodeTags(post.Tags), nullable(post.ImageURL), formatTimePtr(post.PublishedAt))
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting post id: %w", err)
	}
	return s.GetPost(ctx, id)
}

// UpdatePost overwrites a post's fields, returning ErrNotFound when the ID
// does not exist.
func (s *Store) UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts
			SET title = ?, excerpt = ?, content = ?, category = ?, tags = ?,
				image_url = ?, published_at = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		post.Title, post.Excerpt, post.Content, nullable(post.Category),
		encodeTags(post.Tags), nullable(post.ImageURL),
		formatTimePtr(post.PublishedAt), post.ID)
	if err != nil {
		return nil, fmt.Errorf("updating post %d: %w", post.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetPost(ctx, post.ID)
}

// DeletePost removes a post by ID, returning ErrNotFound when absent.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	var (
		post        models.Post
		category    sql.NullString
		tags        string
		imageURL    sql.NullString
		publishedAt sql.NullString
		createdAt   string
		updatedAt   string
	)
	err := scan(&post.ID, &post.Title, &post.Excerpt, &post.Content, &category,
		&tags, &imageURL, &publishedAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning post row: %w", err)
	}
	post.Category = category.String
	post.Tags = decodeTags(tags)
	post.ImageURL = imageURL.String
	if publishedAt.Valid {
		post.PublishedAt = parseTimePtr(&publishedAt.String)
	}
	post.CreatedAt = parseTime(createdAt)
	post.UpdatedAt = parseTime(updatedAt)
	return &post, nil
}

// formatTimePtr renders an optional time for storage, mapping nil to NULL.
func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
