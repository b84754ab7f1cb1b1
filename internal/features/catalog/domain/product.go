package domain

import (
	"errors"
	"strings"

	// prices marshal as JSON numbers
	_ "bakery-storefront/internal/core/money"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPage is used when no page is requested.
	DefaultPage = 1
	// DefaultLimit is the catalog page size used when none is requested.
	DefaultLimit = 12
	// MaxLimit bounds the page size accepted from visitors.
	MaxLimit = 100
)

// ErrProductNotFound is returned when a product id is unknown to the catalog.
var ErrProductNotFound = errors.New("product not found")

// Product is a bakery item as listed by the backend.
type Product struct {
	// ID is the backend identifier of the product.
	ID int `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Image is the URL of the product picture.
	Image string `json:"image"`
	// Description is the long text shown on the product card.
	Description string `json:"description"`
	// Price is the unit price in major currency units.
	Price decimal.Decimal `json:"price"`
	// Category is the label used for category browsing.
	Category string `json:"category"`
}

// Query selects one page of the catalog.
type Query struct {
	Page     int
	Limit    int
	Name     string
	Category string
}

// Normalize applies defaults and bounds.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Name = strings.TrimSpace(q.Name)
	q.Category = strings.TrimSpace(q.Category)
	return q
}

// Page is one page of products.
type Page struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
	// Degraded is set when the page was served from the bundled catalog.
	Degraded bool `json:"degraded"`
}

// Paginate filters products by q's name and category and cuts the requested page.
func Paginate(products []Product, q Query) *Page {
	q = q.Normalize()

	name := strings.ToLower(q.Name)
	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	return &Page{
		Products:   matched[start:end],
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}
}
