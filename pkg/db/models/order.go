package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/giftnest/giftnest-backend/pkg/enums"
)

// Order snapshots a checkout: purchased lines plus totals computed at
// creation time. Line prices are frozen copies, not live product prices.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Status         enums.OrderStatus    `gorm:"column:status;not null;default:'pending'"`
	ShippingOption enums.ShippingOption `gorm:"column:shipping_option;not null;default:'free'"`
	SubtotalCents  int64                `gorm:"column:subtotal_cents;not null"`
	ShippingCents  int64                `gorm:"column:shipping_cents;not null"`
	TotalCents     int64                `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	LineItems []OrderLineItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }
