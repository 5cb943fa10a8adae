package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftnest/giftnest-backend/pkg/db/models"
)

// Repository encapsulates cart persistence. A row with quantity 0 and no
// favourite mark is never stored; writers delete it instead.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListLines returns the user's cart joined with catalog display fields,
// oldest line first.
func (r *Repository) ListLines(ctx context.Context, userID uuid.UUID) ([]LineDTO, error) {
	var lines []LineDTO
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.product_id, p.name AS product_name, p.price_cents AS product_price_cents, p.image_url AS product_image, ci.quantity, ci.is_favourite").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Order("ci.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// FindLine loads one cart row.
func (r *Repository) FindLine(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateLine inserts a new cart row.
func (r *Repository) CreateLine(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateLine sets the absolute quantity/favourite state of an existing row.
func (r *Repository) UpdateLine(ctx context.Context, userID, productID uuid.UUID, quantity int, isFavourite bool) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]any{
			"quantity":     quantity,
			"is_favourite": isFavourite,
			"updated_at":   time.Now(),
		}).Error
}

// DeleteLine removes one cart row if it exists.
func (r *Repository) DeleteLine(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// ListPurchasable returns rows with quantity > 0, joined with live prices.
// Used by checkout to snapshot order lines.
func (r *Repository) ListPurchasable(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]LineDTO, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	var lines []LineDTO
	err := conn.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.product_id, p.name AS product_name, p.price_cents AS product_price_cents, p.image_url AS product_image, ci.quantity, ci.is_favourite").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ? AND ci.quantity > 0", userID).
		Order("ci.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ClearPurchased removes or empties the purchased rows after checkout:
// favourited lines stay as quantity-0 favourites, the rest are deleted.
func (r *Repository) ClearPurchased(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	if err := conn.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND quantity > 0 AND is_favourite = ?", userID, true).
		Updates(map[string]any{"quantity": 0, "updated_at": time.Now()}).Error; err != nil {
		return err
	}
	return conn.WithContext(ctx).
		Where("user_id = ? AND quantity > 0 AND is_favourite = ?", userID, false).
		Delete(&models.CartItem{}).Error
}

// PurgeEmptyLines deletes rows violating the persistence invariant
// (quantity 0 without a favourite mark). Used by the cleanup job.
func (r *Repository) PurgeEmptyLines(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("quantity = 0 AND is_favourite = ?", false).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// PurgeStale deletes rows untouched since the cutoff. Used by the cleanup job.
func (r *Repository) PurgeStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// IsNotFound reports whether the error marks a missing cart row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
