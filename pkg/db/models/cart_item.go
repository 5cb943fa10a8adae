package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem persists one product's quantity/favourite state for a user's cart.
// A row with quantity 0 and is_favourite false is never stored; the cart
// service deletes it instead.
type CartItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_items_user_product"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_items_user_product"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	IsFavourite bool      `gorm:"column:is_favourite;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartItem) TableName() string { return "cart_items" }
