package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"bakery-storefront/internal/core/apiclient"
	"bakery-storefront/internal/features/catalog/domain"
)

// BakeryAPIAdapter implements ports.ProductGateway over the bakery REST API.
type BakeryAPIAdapter struct {
	client *apiclient.Client
}

// NewBakeryAPIAdapter creates a new BakeryAPIAdapter.
func NewBakeryAPIAdapter(client *apiclient.Client) *BakeryAPIAdapter {
	return &BakeryAPIAdapter{client: client}
}

// ListProducts calls GET /products or GET /products/category/:name.
func (a *BakeryAPIAdapter) ListProducts(ctx context.Context, q domain.Query) (*domain.Page, error) {
	q = q.Normalize()

	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.Limit))

	path := "/products"
	if q.Category != "" {
		path = "/products/category/" + url.PathEscape(q.Category)
	} else if q.Name != "" {
		query.Set("name", q.Name)
	}

	var raw json.RawMessage
	if err := a.client.Get(ctx, path, query, &raw); err != nil {
		return nil, err
	}

	page, err := decodePage(raw, q)
	if err != nil {
		return nil, err
	}

	// the category endpoint takes no name filter
	if q.Category != "" && q.Name != "" {
		filtered := domain.Paginate(page.Products, domain.Query{Name: q.Name, Limit: domain.MaxLimit})
		page.Products = filtered.Products
		page.Total = filtered.Total
		page.TotalPages = (filtered.Total + q.Limit - 1) / q.Limit
	}
	return page, nil
}

// HealthCheck verifies that the backend answers the product listing.
func (a *BakeryAPIAdapter) HealthCheck(ctx context.Context) error {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("limit", "1")

	if err := a.client.Get(ctx, "/products", query, nil); err != nil {
		return fmt.Errorf("bakery API health check failed: %w", err)
	}
	return nil
}

// productsEnvelope is the paged listing shape returned by the backend.
type productsEnvelope struct {
	Products   []domain.Product `json:"products"`
	Data       []domain.Product `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// decodePage accepts either the paged envelope or a bare product array.
func decodePage(raw json.RawMessage, q domain.Query) (*domain.Page, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return &domain.Page{Products: []domain.Product{}, Page: q.Page, Limit: q.Limit}, nil
	}

	if trimmed[0] == '[' {
		var products []domain.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("failed to decode products: %w", err)
		}
		return &domain.Page{
			Products:   products,
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      len(products),
			TotalPages: 1,
		}, nil
	}

	var env productsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := env.Products
	if products == nil {
		products = env.Data
	}
	if products == nil {
		products = []domain.Product{}
	}

	page := &domain.Page{
		Products:   products,
		Page:       env.Page,
		Limit:      q.Limit,
		Total:      env.Total,
		TotalPages: env.TotalPages,
	}
	if page.Page == 0 {
		page.Page = q.Page
	}
	if page.Total == 0 {
		page.Total = len(products)
	}
	if page.TotalPages == 0 && page.Total > 0 {
		page.TotalPages = (page.Total + q.Limit - 1) / q.Limit
	}
	return page, nil
}
