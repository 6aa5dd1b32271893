// Package models defines the persisted domain entities shared between the
// storage layer and the HTTP handlers. JSON field names follow the admin
// console's camelCase API contract.
package models

import "time"

// SiteSettings is the single-row set of site-wide branding and contact
// values shown on the public landing page.
type SiteSettings struct {
	ID                  int64     `json:"id,omitempty"`
	CompanyName         string    `json:"companyName"`
	Tagline             string    `json:"tagline,omitempty"`
	HeroHeadline        string    `json:"heroHeadline"`
	HeroSubheadline     string    `json:"heroSubheadline,omitempty"`
	ContactEmail        string    `json:"contactEmail"`
	ContactPhone        string    `json:"contactPhone,omitempty"`
	ContactAddress      string    `json:"contactAddress,omitempty"`
	LogoURL             string    `json:"logoUrl,omitempty"`
	BlogPreviewLimit    int       `json:"blogPreviewLimit"`
	ProductPreviewLimit int       `json:"productPreviewLimit"`
	BackgroundPattern   string    `json:"backgroundPattern"`
	UpdatedAt           time.Time `json:"updatedAt,omitempty"`
}

// HeroSlide is one slide of the landing-page hero carousel.
type HeroSlide struct {
	ID         int64  `json:"id,omitempty"`
	Supertitle string `json:"supertitle,omitempty"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Order      int    `json:"order"`
}

// Service is one consulting offering shown in the services section.
type Service struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Color        string    `json:"color,omitempty"`
	IconKey      string    `json:"iconKey,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	DisplayOrder int      `json:"displayOrder"`
}
