package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/giftnest/giftnest-backend/api/middleware"
	"github.com/giftnest/giftnest-backend/api/responses"
	"github.com/giftnest/giftnest-backend/api/validators"
	cartsvc "github.com/giftnest/giftnest-backend/internal/cart"
	pkgerrors "github.com/giftnest/giftnest-backend/pkg/errors"
	"github.com/giftnest/giftnest-backend/pkg/logger"
)

type cartWriteRequest struct {
	UserID      string `json:"user_id" validate:"omitempty,uuid"`
	ProductID   string `json:"product_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"omitempty,min=0"`
	IsFavourite bool   `json:"is_favourite"`
}

type cartDeleteRequest struct {
	UserID    string `json:"user_id" validate:"omitempty,uuid"`
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// CartFetch serves the authenticated user's cart. A userId query parameter is
// accepted for compatibility with the sync client, but it must match the
// token's subject.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if requested := strings.TrimSpace(r.URL.Query().Get("userId")); requested != "" && requested != userID.String() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cannot read another user's cart"))
			return
		}

		cart, err := svc.GetCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartAdd adds a product to the cart, incrementing the quantity when the line
// already exists.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		input, err := decodeCartWrite(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddItem(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "added"})
	}
}

// CartSet replaces a line's quantity and favourite flag with the given values.
func CartSet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		input, err := decodeCartWrite(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetItem(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// CartRemove deletes a line outright. Removing an absent line is a no-op.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartDeleteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := matchAuthedUser(payload.UserID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.RemoveItem(r.Context(), userID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

func decodeCartWrite(r *http.Request) (cartsvc.WriteInput, error) {
	userID, err := authedUserID(r)
	if err != nil {
		return cartsvc.WriteInput{}, err
	}

	var payload cartWriteRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return cartsvc.WriteInput{}, err
	}

	if err := matchAuthedUser(payload.UserID, userID); err != nil {
		return cartsvc.WriteInput{}, err
	}

	productID, err := uuid.Parse(payload.ProductID)
	if err != nil {
		return cartsvc.WriteInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}

	return cartsvc.WriteInput{
		UserID:      userID,
		ProductID:   productID,
		Quantity:    payload.Quantity,
		IsFavourite: payload.IsFavourite,
	}, nil
}

// matchAuthedUser rejects write bodies that name a different user than the
// token subject. The field is optional; the subject is authoritative.
func matchAuthedUser(requested string, authed uuid.UUID) error {
	if requested != "" && requested != authed.String() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot write another user's cart")
	}
	return nil
}

func authedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
