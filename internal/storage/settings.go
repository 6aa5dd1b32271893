package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quantumleap-ai/sitekit/internal/models"
)

// DefaultSettings are the branding values served before an admin ever saves
// the settings form.
var DefaultSettings = models.SiteSettings{
	CompanyName:         "QuantumLeap AI",
	Tagline:             "Innovate with Intelligence",
	HeroHeadline:        "Innovate with Intelligence",
	HeroSubheadline:     "We build custom AI to solve your most complex business challenges.",
	ContactEmail:        "hello@example.com",
	ContactPhone:        "+1 (555) 123-4567",
	ContactAddress:      "123 Innovation Way, Tech City",
	BlogPreviewLimit:    3,
	ProductPreviewLimit: 2,
	BackgroundPattern:   "mesh",
}

// GetSettings returns the site settings row, or DefaultSettings when none
// has been saved yet.
func (s *Store) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, company_name, tagline, hero_headline, hero_subheadline,
				contact_email, contact_phone, contact_address, logo_url,
				blog_preview_limit, product_preview_limit, background_pattern,
				updated_at
		 FROM site_settings ORDER BY id ASC LIMIT 1`)

	var (
		settings  models.SiteSettings
		tagline   sql.NullString
		subhead   sql.NullString
		phone     sql.NullString
		address   sql.NullString
		logoURL   sql.NullString
		updatedAt string
	)
	err := row.Scan(
		&settings.ID, &settings.CompanyName, &tagline, &settings.HeroHeadline,
		&subhead, &settings.ContactEmail, &phone, &address, &logoURL,
		&settings.BlogPreviewLimit, &settings.ProductPreviewLimit,
		&settings.BackgroundPattern, &updatedAt,
	)
	if err == sql.ErrNoRows {
		defaults := DefaultSettings
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying site settings: %w", err)
	}

	settings.Tagline = tagline.String
	settings.HeroSubheadline = subhead.String
	settings.ContactPhone = phone.String
	settings.ContactAddress = address.String
	settings.LogoURL = logoURL.String
	settings.UpdatedAt = parseTime(updatedAt)
	return &settings, nil
}

// SaveSettings inserts or updates the single site-settings row and returns
// the stored values.
func (s *Store) SaveSettings(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	var existingID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM site_settings ORDER BY id ASC LIMIT 1`).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO site_settings
				(company_name, tagline, hero_headline, hero_subheadline, contact_email,
				 contact_phone, contact_address, logo_url, blog_preview_limit,
				 product_preview_limit, background_pattern)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			settings.CompanyName, nullable(settings.Tagline), settings.HeroHeadline,
			nullable(settings.HeroSubheadline), settings.ContactEmail,
			nullable(settings.ContactPhone), nullable(settings.ContactAddress),
			nullable(settings.LogoURL), settings.BlogPreviewLimit,
			settings.ProductPreviewLimit, settings.BackgroundPattern,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting site settings: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("checking existing settings: %w", err)
	default:
		_, err = s.db.ExecContext(ctx,
			`UPDATE site_settings
				SET company_name = ?, tagline = ?, hero_headline = ?,
					hero_subheadline = ?, contact_email = ?, contact_phone = ?,
					contact_address = ?, logo_url = ?, blog_preview_limit = ?,
					product_preview_limit = ?, background_pattern = ?,
					updated_at = datetime('now')
			 WHERE id = ?`,
			settings.CompanyName, nullable(settings.Tagline), settings.HeroHeadline,
			nullable(settings.HeroSubheadline), settings.ContactEmail,
			nullable(settings.ContactPhone), nullable(settings.ContactAddress),
			nullable(settings.LogoURL), settings.BlogPreviewLimit,
			settings.ProductPreviewLimit, settings.BackgroundPattern, existingID,
		)
		if err != nil {
			return nil, fmt.Errorf("updating site settings: %w", err)
		}
	}

	return s.GetSettings(ctx)
}

// GetHeroSlides returns all hero slides ordered by their display position.
func (s *Store) GetHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, supertitle, title, subtitle, image_url, order_index
		 FROM hero_slides ORDER BY order_index ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying hero slides: %w", err)
	}
	defer rows.Close()

	slides := []models.HeroSlide{}
	for rows.Next() {
		var (
			slide      models.HeroSlide
			supertitle sql.NullString
			imageURL   sql.NullString
		)
		if err := rows.Scan(&slide.ID, &supertitle, &slide.Title, &slide.Subtitle, &imageURL, &slide.Order); err != nil {
			return nil, fmt.Errorf("scanning hero slide: %w", err)
		}
		slide.Supertitle = supertitle.String
		slide.ImageURL = imageURL.String
		slides = append(slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hero slides: %w", err)
	}
	return slides, nil
}

// ReplaceHeroSlides swaps the full slide set in one transaction. Slides
// missing a title or subtitle are skipped; order falls back to list position.
func (s *Store) ReplaceHeroSlides(ctx context.Context, slides []models.HeroSlide) ([]models.HeroSlide, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning slide transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM hero_slides`); err != nil {
		return nil, fmt.Errorf("clearing hero slides: %w", err)
	}

	for i, slide := range slides {
		if slide.Title == "" || slide.Subtitle == "" {
			continue
		}
		order := slide.Order
		if order == 0 {
			order = i
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO hero_slides (supertitle, title, subtitle, image_url, order_index)
			 VALUES (?, ?, ?, ?, ?)`,
			nullable(slide.Supertitle), slide.Title, slide.Subtitle,
			nullable(slide.ImageURL), order,
		); err != nil {
			return nil, fmt.Errorf("inserting hero slide %q: %w", slide.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing hero slides: %w", err)
	}

	return s.GetHeroSlides(ctx)
}

// nullable converts an empty string to a SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
