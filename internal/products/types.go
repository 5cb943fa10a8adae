package products

import (
	"time"

	"github.com/google/uuid"
)

// ProductSummary is the catalog projection returned to the storefront.
type ProductSummary struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	PriceCents   int64      `json:"price_cents"`
	ImageURL     string     `json:"image_url"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CategorySlug *string    `json:"category_slug,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CategoryDTO is a storefront navigation entry.
type CategoryDTO struct {
	ID       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url"`
}

// PageMeta carries cursor pagination metadata.
type PageMeta struct {
	Total   int    `json:"total"`
	Current string `json:"current,omitempty"`
	Next    string `json:"next,omitempty"`
	Prev    string `json:"prev,omitempty"`
}

// ProductsPageDTO is one page of catalog results.
type ProductsPageDTO struct {
	Items      []ProductSummary `json:"items"`
	Pagination PageMeta         `json:"pagination"`
}

// ListFilter narrows a catalog listing.
type ListFilter struct {
	CategorySlug string
	Cursor       string
	Limit        int
}
