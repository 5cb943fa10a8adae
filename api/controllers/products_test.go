package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	productsvc "github.com/giftnest/giftnest-backend/internal/products"
	pkgerrors "github.com/giftnest/giftnest-backend/pkg/errors"
)

type stubProductService struct {
	page       productsvc.ProductsPageDTO
	product    productsvc.ProductSummary
	categories []productsvc.CategoryDTO
	listErr    error
	getErr     error
	catErr     error
	lastFilter productsvc.ListFilter
}

func (s *stubProductService) ListProducts(_ context.Context, filter productsvc.ListFilter) (productsvc.ProductsPageDTO, error) {
	s.lastFilter = filter
	return s.page, s.listErr
}

func (s *stubProductService) GetProduct(_ context.Context, _ uuid.UUID) (productsvc.ProductSummary, error) {
	return s.product, s.getErr
}

func (s *stubProductService) ListCategories(_ context.Context) ([]productsvc.CategoryDTO, error) {
	return s.categories, s.catErr
}

func TestListProductsAppliesQueryFilter(t *testing.T) {
	svc := &stubProductService{page: productsvc.ProductsPageDTO{
		Items:      []productsvc.ProductSummary{{ID: uuid.New(), Name: "Cedar Gift Box"}},
		Pagination: productsvc.PageMeta{Total: 1},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=ribbons&limit=5&cursor=abc", nil)
	resp := httptest.NewRecorder()
	ListProducts(svc, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastFilter.CategorySlug != "ribbons" {
		t.Fatalf("expected category ribbons got %q", svc.lastFilter.CategorySlug)
	}
	if svc.lastFilter.Limit != 5 {
		t.Fatalf("expected limit 5 got %d", svc.lastFilter.Limit)
	}
	if svc.lastFilter.Cursor != "abc" {
		t.Fatalf("expected cursor abc got %q", svc.lastFilter.Cursor)
	}

	var envelope struct {
		Data productsvc.ProductsPageDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected 1 item got %d", len(envelope.Data.Items))
	}
}

func TestListProductsRejectsOutOfRangeLimit(t *testing.T) {
	svc := &stubProductService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=5000", nil)
	resp := httptest.NewRecorder()
	ListProducts(svc, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductReturnsNotFound(t *testing.T) {
	svc := &stubProductService{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("productId", uuid.NewString())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

	resp := httptest.NewRecorder()
	GetProduct(svc, nil)(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestListCategories(t *testing.T) {
	svc := &stubProductService{categories: []productsvc.CategoryDTO{
		{ID: uuid.New(), Slug: "ribbons", Name: "Ribbons"},
		{ID: uuid.New(), Slug: "wrapping", Name: "Wrapping"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	resp := httptest.NewRecorder()
	ListCategories(svc, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data []productsvc.CategoryDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 categories got %d", len(envelope.Data))
	}
}
