package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/giftnest/giftnest-backend/internal/cartsession"
	"github.com/giftnest/giftnest-backend/pkg/config"
	"github.com/giftnest/giftnest-backend/pkg/types"
)

const cartPath = "/api/v1/cart"

// Client talks to the remote cart resource over its JSON interface. It is
// the production implementation of cartsession.Remote.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// ClientParams carries the dependencies for NewClient.
type ClientParams struct {
	Config      config.CartAPIConfig
	BearerToken string
	HTTPClient  *http.Client
}

// NewClient validates the base URL and returns a cart API client.
func NewClient(params ClientParams) (*Client, error) {
	base := strings.TrimRight(params.Config.BaseURL, "/")
	if base == "" {
		return nil, errors.New("cart api base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parsing cart api base url: %w", err)
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := params.Config.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		token:      params.BearerToken,
	}, nil
}

type cartLine struct {
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	ProductPriceCents int64     `json:"product_price_cents"`
	ProductImage      string    `json:"product_image"`
	Quantity          int       `json:"quantity"`
	IsFavourite       bool      `json:"is_favourite"`
}

type cartEnvelope struct {
	CartItems []cartLine `json:"cart_items"`
}

type writeRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	IsFavourite bool      `json:"is_favourite"`
}

type deleteRequest struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// Fetch returns the user's cart lines joined with catalog display fields.
func (c *Client) Fetch(ctx context.Context, userID uuid.UUID) ([]cartsession.LineItem, error) {
	endpoint := fmt.Sprintf("%s%s?userId=%s", c.baseURL, cartPath, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building cart fetch request: %w", err)
	}

	var envelope cartEnvelope
	if err := c.do(req, &envelope); err != nil {
		return nil, err
	}

	items := make([]cartsession.LineItem, 0, len(envelope.CartItems))
	for _, line := range envelope.CartItems {
		items = append(items, cartsession.LineItem{
			ProductID:      line.ProductID,
			Name:           line.ProductName,
			ImageURL:       line.ProductImage,
			UnitPriceCents: line.ProductPriceCents,
			Quantity:       line.Quantity,
			IsFavourite:    line.IsFavourite,
		})
	}
	return items, nil
}

// Add creates the line or increments its quantity (POST semantics).
func (c *Client) Add(ctx context.Context, userID uuid.UUID, item cartsession.LineItem) error {
	return c.write(ctx, http.MethodPost, writeRequest{
		UserID:      userID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		IsFavourite: item.IsFavourite,
	})
}

// Upsert sets the absolute quantity/favourite state (PUT semantics).
func (c *Client) Upsert(ctx context.Context, userID uuid.UUID, item cartsession.LineItem) error {
	return c.write(ctx, http.MethodPut, writeRequest{
		UserID:      userID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		IsFavourite: item.IsFavourite,
	})
}

// Delete removes the product's line from the remote cart.
func (c *Client) Delete(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error {
	body, err := json.Marshal(deleteRequest{UserID: userID, ProductID: productID})
	if err != nil {
		return fmt.Errorf("encoding cart delete request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+cartPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building cart delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) write(ctx context.Context, method string, payload writeRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding cart write request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+cartPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building cart write request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling cart api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	envelope := types.SuccessEnvelope{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding cart api response: %w", err)
	}
	return nil
}
