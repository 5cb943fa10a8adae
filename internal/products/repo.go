package products

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftnest/giftnest-backend/pkg/db/models"
	"github.com/giftnest/giftnest-backend/pkg/pagination"
)

// Repository encapsulates catalog persistence. The catalog is read-only from
// the storefront's perspective; writes happen through migrations or back
// office tooling.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID           uuid.UUID      `gorm:"column:id"`
	Name         string         `gorm:"column:name"`
	Description  string         `gorm:"column:description"`
	PriceCents   int64          `gorm:"column:price_cents"`
	ImageURL     string         `gorm:"column:image_url"`
	CategoryID   *uuid.UUID     `gorm:"column:category_id"`
	CategorySlug sql.NullString `gorm:"column:category_slug"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (r productRecord) toSummary() ProductSummary {
	summary := ProductSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		ImageURL:    r.ImageURL,
		CategoryID:  r.CategoryID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.CategorySlug.Valid {
		slug := r.CategorySlug.String
		summary.CategorySlug = &slug
	}
	return summary
}

// List returns a cursor-paginated page of active products, optionally
// filtered by category slug.
func (r *Repository) List(ctx context.Context, filter ListFilter) (ProductsPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(filter.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(filter.Limit)
	cursorValue := strings.TrimSpace(filter.Cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return ProductsPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Table("products p").
		Select("p.id, p.name, p.description, p.price_cents, p.image_url, p.category_id, c.slug AS category_slug, p.created_at, p.updated_at").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Where("p.is_active = ?", true)

	countQuery := r.db.WithContext(ctx).
		Table("products p").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Where("p.is_active = ?", true)

	if filter.CategorySlug != "" {
		query = query.Where("c.slug = ?", filter.CategorySlug)
		countQuery = countQuery.Where("c.slug = ?", filter.CategorySlug)
	}
	if decodedCursor != nil {
		query = query.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []productRecord
	if err := query.Scan(&records).Error; err != nil {
		return ProductsPageDTO{}, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > normalizedLimit {
		resultRows = records[:normalizedLimit]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	items := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		items = append(items, record.toSummary())
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return ProductsPageDTO{}, err
	}

	return ProductsPageDTO{
		Items: items,
		Pagination: PageMeta{
			Total:   int(total),
			Current: cursorValue,
			Next:    nextCursor,
			Prev:    cursorValue,
		},
	}, nil
}

// FindByID returns one active product.
func (r *Repository) FindByID(ctx context.Context, productID uuid.UUID) (ProductSummary, error) {
	var record productRecord
	err := r.db.WithContext(ctx).
		Table("products p").
		Select("p.id, p.name, p.description, p.price_cents, p.image_url, p.category_id, c.slug AS category_slug, p.created_at, p.updated_at").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Where("p.id = ? AND p.is_active = ?", productID, true).
		First(&record).Error
	if err != nil {
		return ProductSummary{}, err
	}
	return record.toSummary(), nil
}

// Exists reports whether an active product with the given id exists.
func (r *Repository) Exists(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_active = ?", productID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, CategoryDTO{
			ID:       row.ID,
			Slug:     row.Slug,
			Name:     row.Name,
			ImageURL: row.ImageURL,
		})
	}
	return categories, nil
}

// IsNotFound reports whether the error marks a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
