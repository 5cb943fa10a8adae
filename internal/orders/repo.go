package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftnest/giftnest-backend/pkg/db/models"
	"github.com/giftnest/giftnest-backend/pkg/enums"
)

// Repository encapsulates order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order and its lines. Runs inside the caller's
// transaction when tx is non-nil.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.LineItems {
		if order.LineItems[i].ID == uuid.Nil {
			order.LineItems[i].ID = uuid.New()
		}
		order.LineItems[i].OrderID = order.ID
	}
	return conn.WithContext(ctx).Create(order).Error
}

// ListByUser returns the user's orders with lines, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByIDForUser loads one order scoped to its owner.
func (r *Repository) FindByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var row models.Order
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CancelPendingOlderThan flips stale pending orders to cancelled. Used by
// the order TTL job.
func (r *Repository) CancelPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ? AND created_at < ?", enums.OrderStatusPending, cutoff).
		Updates(map[string]any{
			"status":     enums.OrderStatusCancelled,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// IsNotFound reports whether the error marks a missing order.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
