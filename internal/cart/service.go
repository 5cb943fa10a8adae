package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/giftnest/giftnest-backend/internal/products"
	"github.com/giftnest/giftnest-backend/pkg/db/models"
	pkgerrors "github.com/giftnest/giftnest-backend/pkg/errors"
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    *Repository
	ProductRepo *products.Repository
}

// Service exposes the server side of the cart JSON interface.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error)
	AddItem(ctx context.Context, input WriteInput) error
	SetItem(ctx context.Context, input WriteInput) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	cartRepo    *Repository
	productRepo *products.Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
	}, nil
}

// GetCart returns the joined cart view with its subtotal.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	lines, err := s.cartRepo.ListLines(ctx, userID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart lines")
	}
	var subtotal int64
	for _, line := range lines {
		subtotal += int64(line.Quantity) * line.ProductPriceCents
	}
	if lines == nil {
		lines = []LineDTO{}
	}
	return CartDTO{CartItems: lines, SubtotalCents: subtotal}, nil
}

// AddItem creates the line or increments its quantity (POST semantics).
func (s *service) AddItem(ctx context.Context, input WriteInput) error {
	if err := s.validateWrite(ctx, input); err != nil {
		return err
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	existing, err := s.cartRepo.FindLine(ctx, input.UserID, input.ProductID)
	if err != nil {
		if !IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}
		return s.createLine(ctx, input)
	}

	quantity := existing.Quantity + input.Quantity
	favourite := existing.IsFavourite || input.IsFavourite
	if err := s.cartRepo.UpdateLine(ctx, input.UserID, input.ProductID, quantity, favourite); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	return nil
}

// SetItem stores the absolute quantity/favourite state (PUT semantics). A
// state of quantity 0 without a favourite mark deletes the line instead of
// persisting it.
func (s *service) SetItem(ctx context.Context, input WriteInput) error {
	if err := s.validateWrite(ctx, input); err != nil {
		return err
	}

	if input.Quantity == 0 && !input.IsFavourite {
		if err := s.cartRepo.DeleteLine(ctx, input.UserID, input.ProductID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
		}
		return nil
	}

	_, err := s.cartRepo.FindLine(ctx, input.UserID, input.ProductID)
	if err != nil {
		if !IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}
		return s.createLine(ctx, input)
	}

	if err := s.cartRepo.UpdateLine(ctx, input.UserID, input.ProductID, input.Quantity, input.IsFavourite); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	return nil
}

// RemoveItem deletes the line. Removing an absent line is not an error.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.cartRepo.DeleteLine(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	return nil
}

func (s *service) validateWrite(ctx context.Context, input WriteInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}

	exists, err := s.productRepo.Exists(ctx, input.ProductID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) createLine(ctx context.Context, input WriteInput) error {
	item := &models.CartItem{
		UserID:      input.UserID,
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		IsFavourite: input.IsFavourite,
	}
	if err := s.cartRepo.CreateLine(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart line")
	}
	return nil
}
