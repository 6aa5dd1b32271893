package models

import "time"

// Product is a product-page entry with ordered feature bullets and gallery
// images, both replaced wholesale on update.
type Product struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription"`
	PageContent     string    `json:"pageContent,omitempty"`
	DisplayOrder    int       `json:"displayOrder"`
	Features        []string  `json:"features"`
	Images          []string  `json:"images"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}
