package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bakery-storefront/internal/core/apiclient"
	"bakery-storefront/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

// BakeryAPIAdapter implements ports.OrderGateway over the bakery REST API.
type BakeryAPIAdapter struct {
	client *apiclient.Client
}

// NewBakeryAPIAdapter creates a new BakeryAPIAdapter.
func NewBakeryAPIAdapter(client *apiclient.Client) *BakeryAPIAdapter {
	return &BakeryAPIAdapter{client: client}
}

// Create calls POST /orders with an Idempotency-Key header. A 2xx answer
// without a body still means the order was created; its id is then unknown.
func (a *BakeryAPIAdapter) Create(ctx context.Context, order domain.NewOrder, idempotencyKey string) (*domain.Order, error) {
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   "/orders",
		Body:   order,
	}
	if idempotencyKey != "" {
		req.Headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	var raw json.RawMessage
	if err := a.client.Do(ctx, req, &raw); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &domain.Order{}, nil
	}
	return decodeOrder(raw)
}

// List calls GET /orders.
func (a *BakeryAPIAdapter) List(ctx context.Context) ([]domain.Order, error) {
	return a.list(ctx, "/orders")
}

// ListByUser calls GET /orders/user/:userId.
func (a *BakeryAPIAdapter) ListByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return a.list(ctx, "/orders/user/"+strconv.Itoa(userID))
}

// ListByStatus calls GET /orders/status/:status.
func (a *BakeryAPIAdapter) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return a.list(ctx, "/orders/status/"+url.PathEscape(string(status)))
}

// Get calls GET /orders/:id. A 404 becomes domain.ErrOrderNotFound.
func (a *BakeryAPIAdapter) Get(ctx context.Context, id int) (*domain.Order, error) {
	var raw json.RawMessage
	if err := a.client.Get(ctx, "/orders/"+strconv.Itoa(id), nil, &raw); err != nil {
		return nil, notFound(err)
	}
	return decodeOrder(raw)
}

// UpdateStatus calls PATCH /orders/:id/status. When the backend answers
// without a body the order is fetched again.
func (a *BakeryAPIAdapter) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	body := map[string]string{"status": string(status)}

	var raw json.RawMessage
	if err := a.client.Patch(ctx, "/orders/"+strconv.Itoa(id)+"/status", body, &raw); err != nil {
		return nil, notFound(err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return a.Get(ctx, id)
	}
	return decodeOrder(raw)
}

// Delete calls DELETE /orders/:id.
func (a *BakeryAPIAdapter) Delete(ctx context.Context, id int) error {
	if err := a.client.Delete(ctx, "/orders/"+strconv.Itoa(id)); err != nil {
		return notFound(err)
	}
	return nil
}

func (a *BakeryAPIAdapter) list(ctx context.Context, path string) ([]domain.Order, error) {
	var raw json.RawMessage
	if err := a.client.Get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeOrders(raw)
}

func notFound(err error) error {
	if errors.Is(err, apiclient.ErrNotFound) {
		return domain.ErrOrderNotFound
	}
	return err
}

// decodeOrders accepts a bare array or an {"orders": [...]} / {"data": [...]} envelope.
func decodeOrders(raw json.RawMessage) ([]domain.Order, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []domain.Order{}, nil
	}

	var items []apiOrder
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode orders: %w", err)
		}
	} else {
		var env struct {
			Orders []apiOrder `json:"orders"`
			Data   []apiOrder `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to decode orders: %w", err)
		}
		items = env.Orders
		if items == nil {
			items = env.Data
		}
	}

	orders := make([]domain.Order, 0, len(items))
	for _, o := range items {
		orders = append(orders, o.mapToDomain())
	}
	return orders, nil
}

// decodeOrder accepts a bare order or an {"order": {...}} envelope.
func decodeOrder(raw json.RawMessage) (*domain.Order, error) {
	var env struct {
		apiOrder
		Order *apiOrder `json:"order"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}

	src := env.apiOrder
	if env.Order != nil {
		src = *env.Order
	}
	order := src.mapToDomain()
	return &order, nil
}

// internal structs for mapping

// apiOrder is the order shape returned by the backend. Line items may carry
// the product id flat or as a nested product object.
type apiOrder struct {
	ID              int             `json:"id"`
	UserID          int             `json:"userId"`
	Items           []apiOrderItem  `json:"items"`
	PaymentMethod   string          `json:"paymentMethod"`
	DeliveryMethod  string          `json:"deliveryMethod"`
	ShippingAddress string          `json:"shippingAddress"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	CreatedAt       apiTime         `json:"createdAt"`
	UpdatedAt       apiTime         `json:"updatedAt"`
	User            *apiUser        `json:"user"`
}

type apiOrderItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Product   *struct {
		ID    int             `json:"id"`
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	} `json:"product"`
}

type apiUser struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

func (o apiOrder) mapToDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		item := domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
		if it.Product != nil {
			if item.ProductID == 0 {
				item.ProductID = it.Product.ID
			}
			if item.Name == "" {
				item.Name = it.Product.Name
			}
			if item.Price.IsZero() {
				item.Price = it.Product.Price
			}
		}
		items = append(items, item)
	}

	order := domain.Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		PaymentMethod:   domain.PaymentMethod(strings.ToUpper(o.PaymentMethod)),
		DeliveryMethod:  domain.DeliveryMethod(strings.ToUpper(o.DeliveryMethod)),
		ShippingAddress: o.ShippingAddress,
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		Total:           o.Total,
		Status:          domain.OrderStatus(strings.ToUpper(o.Status)),
		CreatedAt:       time.Time(o.CreatedAt),
		UpdatedAt:       time.Time(o.UpdatedAt),
	}
	if o.User != nil {
		order.User = &domain.Customer{ID: o.User.ID, Name: o.User.Name, Surname: o.User.Surname, Email: o.User.Email}
		if order.UserID == 0 {
			order.UserID = o.User.ID
		}
	}
	return order
}

// apiTime parses the timestamp formats seen from the backend.
type apiTime time.Time

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON accepts RFC 3339 and zone-less timestamps; null or empty stays zero.
func (t *apiTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = apiTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
