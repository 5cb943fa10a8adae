package products

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/giftnest/giftnest-backend/pkg/errors"
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes the read-only catalog surface.
type Service interface {
	ListProducts(ctx context.Context, filter ListFilter) (ProductsPageDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (ProductSummary, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) (ProductsPageDTO, error) {
	page, err := s.repo.List(ctx, filter)
	if err != nil {
		return ProductsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return page, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (ProductSummary, error) {
	if productID == uuid.Nil {
		return ProductSummary{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	summary, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if IsNotFound(err) {
			return ProductSummary{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return summary, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}
