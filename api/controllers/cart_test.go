package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/giftnest/giftnest-backend/api/middleware"
	cartsvc "github.com/giftnest/giftnest-backend/internal/cart"
	pkgerrors "github.com/giftnest/giftnest-backend/pkg/errors"
)

type stubCartService struct {
	cart       cartsvc.CartDTO
	getErr     error
	addErr     error
	setErr     error
	removeErr  error
	lastWrite  cartsvc.WriteInput
	lastRemove uuid.UUID
}

func (s *stubCartService) GetCart(_ context.Context, _ uuid.UUID) (cartsvc.CartDTO, error) {
	return s.cart, s.getErr
}

func (s *stubCartService) AddItem(_ context.Context, input cartsvc.WriteInput) error {
	s.lastWrite = input
	return s.addErr
}

func (s *stubCartService) SetItem(_ context.Context, input cartsvc.WriteInput) error {
	s.lastWrite = input
	return s.setErr
}

func (s *stubCartService) RemoveItem(_ context.Context, _, productID uuid.UUID) error {
	s.lastRemove = productID
	return s.removeErr
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithUserID(req.Context(), userID.String())
	return req.WithContext(ctx)
}

func TestCartFetchReturnsCart(t *testing.T) {
	userID := uuid.New()
	svc := &stubCartService{cart: cartsvc.CartDTO{
		CartItems: []cartsvc.LineDTO{{
			ProductID:         uuid.New(),
			ProductName:       "Velvet Ribbon Spool",
			ProductPriceCents: 750,
			Quantity:          2,
		}},
		SubtotalCents: 1500,
	}}

	resp := httptest.NewRecorder()
	CartFetch(svc, nil)(resp, authedRequest(http.MethodGet, "/api/v1/cart", "", userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SubtotalCents != 1500 {
		t.Fatalf("expected subtotal 1500 got %d", envelope.Data.SubtotalCents)
	}
	if len(envelope.Data.CartItems) != 1 {
		t.Fatalf("expected 1 cart item got %d", len(envelope.Data.CartItems))
	}
}

func TestCartFetchRejectsMismatchedUserQuery(t *testing.T) {
	userID := uuid.New()
	svc := &stubCartService{}

	resp := httptest.NewRecorder()
	CartFetch(svc, nil)(resp, authedRequest(http.MethodGet, "/api/v1/cart?userId="+uuid.NewString(), "", userID))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCartFetchRequiresUserContext(t *testing.T) {
	svc := &stubCartService{}
	resp := httptest.NewRecorder()
	CartFetch(svc, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartAddPassesInputThrough(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	svc := &stubCartService{}

	body := `{"product_id":"` + productID.String() + `","quantity":3,"is_favourite":true}`
	resp := httptest.NewRecorder()
	CartAdd(svc, nil)(resp, authedRequest(http.MethodPost, "/api/v1/cart", body, userID))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastWrite.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, svc.lastWrite.UserID)
	}
	if svc.lastWrite.ProductID != productID {
		t.Fatalf("expected product %s got %s", productID, svc.lastWrite.ProductID)
	}
	if svc.lastWrite.Quantity != 3 || !svc.lastWrite.IsFavourite {
		t.Fatalf("unexpected write input %+v", svc.lastWrite)
	}
}

func TestCartAddAcceptsMatchingBodyUser(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	svc := &stubCartService{}

	body := `{"user_id":"` + userID.String() + `","product_id":"` + productID.String() + `","quantity":1}`
	resp := httptest.NewRecorder()
	CartAdd(svc, nil)(resp, authedRequest(http.MethodPost, "/api/v1/cart", body, userID))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastWrite.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, svc.lastWrite.UserID)
	}
}

func TestCartAddRejectsMismatchedBodyUser(t *testing.T) {
	svc := &stubCartService{}
	body := `{"user_id":"` + uuid.NewString() + `","product_id":"` + uuid.NewString() + `","quantity":1}`
	resp := httptest.NewRecorder()
	CartAdd(svc, nil)(resp, authedRequest(http.MethodPost, "/api/v1/cart", body, uuid.New()))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if svc.lastWrite.ProductID != uuid.Nil {
		t.Fatal("the write must not reach the service")
	}
}

func TestCartRemoveRejectsMismatchedBodyUser(t *testing.T) {
	svc := &stubCartService{}
	body := `{"user_id":"` + uuid.NewString() + `","product_id":"` + uuid.NewString() + `"}`
	resp := httptest.NewRecorder()
	CartRemove(svc, nil)(resp, authedRequest(http.MethodDelete, "/api/v1/cart", body, uuid.New()))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if svc.lastRemove != uuid.Nil {
		t.Fatal("the remove must not reach the service")
	}
}

func TestCartAddRejectsInvalidBody(t *testing.T) {
	svc := &stubCartService{}
	resp := httptest.NewRecorder()
	CartAdd(svc, nil)(resp, authedRequest(http.MethodPost, "/api/v1/cart", `{"product_id":"nope"}`, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartSetSurfacesServiceError(t *testing.T) {
	svc := &stubCartService{setErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	body := `{"product_id":"` + uuid.NewString() + `","quantity":1}`
	resp := httptest.NewRecorder()
	CartSet(svc, nil)(resp, authedRequest(http.MethodPut, "/api/v1/cart", body, uuid.New()))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartRemoveDeletesLine(t *testing.T) {
	productID := uuid.New()
	svc := &stubCartService{}
	body := `{"product_id":"` + productID.String() + `"}`
	resp := httptest.NewRecorder()
	CartRemove(svc, nil)(resp, authedRequest(http.MethodDelete, "/api/v1/cart", body, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastRemove != productID {
		t.Fatalf("expected product %s got %s", productID, svc.lastRemove)
	}
}
