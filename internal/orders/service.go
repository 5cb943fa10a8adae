package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giftnest/giftnest-backend/internal/cart"
	"github.com/giftnest/giftnest-backend/internal/cartsession"
	"github.com/giftnest/giftnest-backend/pkg/db/models"
	"github.com/giftnest/giftnest-backend/pkg/enums"
	pkgerrors "github.com/giftnest/giftnest-backend/pkg/errors"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	OrderRepo *Repository
	CartRepo  *cart.Repository
	Tx        TxRunner
	Rates     cartsession.ShippingRates
}

// Service exposes checkout and order history.
type Service interface {
	CreateFromCart(ctx context.Context, input CheckoutInput) (OrderDTO, error)
	List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	Get(ctx context.Context, orderID, userID uuid.UUID) (OrderDTO, error)
}

type service struct {
	orderRepo *Repository
	cartRepo  *cart.Repository
	tx        TxRunner
	rates     cartsession.ShippingRates
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	return &service{
		orderRepo: params.OrderRepo,
		cartRepo:  params.CartRepo,
		tx:        params.Tx,
		rates:     params.Rates,
	}, nil
}

// CreateFromCart snapshots the user's purchasable cart lines into a pending
// order, computing totals from frozen prices, then clears the purchased
// lines. The snapshot and the cart cleanup commit atomically. No payment is
// taken; orders start pending.
func (s *service) CreateFromCart(ctx context.Context, input CheckoutInput) (OrderDTO, error) {
	if input.UserID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	option := enums.ParseShippingOption(string(input.ShippingOption))

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		lines, err := s.cartRepo.ListPurchasable(ctx, tx, input.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart lines")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart has no purchasable items")
		}

		order := buildOrder(input.UserID, option, lines, s.rates)
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := s.cartRepo.ClearPurchased(ctx, tx, input.UserID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear purchased cart lines")
		}
		created = order
		return nil
	})
	if err != nil {
		return OrderDTO{}, err
	}
	return toDTO(created), nil
}

// List returns the user's order history, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, toDTO(&rows[i]))
	}
	return dtos, nil
}

// Get returns one order scoped to its owner.
func (s *service) Get(ctx context.Context, orderID, userID uuid.UUID) (OrderDTO, error) {
	if orderID == uuid.Nil || userID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order id and user id are required")
	}
	row, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if IsNotFound(err) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return toDTO(row), nil
}

func buildOrder(userID uuid.UUID, option enums.ShippingOption, lines []cart.LineDTO, rates cartsession.ShippingRates) *models.Order {
	items := make([]models.OrderLineItem, 0, len(lines))
	var subtotal int64
	for _, line := range lines {
		lineTotal := int64(line.Quantity) * line.ProductPriceCents
		subtotal += lineTotal
		items = append(items, models.OrderLineItem{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			UnitPriceCents: line.ProductPriceCents,
			Quantity:       line.Quantity,
			LineTotalCents: lineTotal,
		})
	}

	total := cartsession.TotalCents(subtotal, option, rates)
	return &models.Order{
		UserID:         userID,
		Status:         enums.OrderStatusPending,
		ShippingOption: option,
		SubtotalCents:  subtotal,
		ShippingCents:  total - subtotal,
		TotalCents:     total,
		LineItems:      items,
	}
}

func toDTO(order *models.Order) OrderDTO {
	lines := make([]LineItemDTO, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		lines = append(lines, LineItemDTO{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			LineTotalCents: line.LineTotalCents,
		})
	}
	return OrderDTO{
		ID:             order.ID,
		Status:         order.Status,
		ShippingOption: order.ShippingOption,
		SubtotalCents:  order.SubtotalCents,
		ShippingCents:  order.ShippingCents,
		TotalCents:     order.TotalCents,
		CreatedAt:      order.CreatedAt,
		LineItems:      lines,
	}
}
