package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"bakery-storefront/internal/core/money"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderNotFound is returned when the order does not exist or is not visible to the caller.
	ErrOrderNotFound = errors.New("order not found")
	// ErrTerminalStatus is returned when a delivered order is asked to change status.
	ErrTerminalStatus = errors.New("order status is final")
	// ErrInvalidStatus is returned for status values outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")
)

// OrderStatus represents the current state of an order.
type OrderStatus string

const (
	// StatusPending is the status of a freshly placed order.
	StatusPending OrderStatus = "PENDIENTE"
	// StatusConfirmed means the bakery accepted the order.
	StatusConfirmed OrderStatus = "CONFIRMADO"
	// StatusInPreparation means the order is being baked or packed.
	StatusInPreparation OrderStatus = "EN_PREPARACION"
	// StatusShipped means the order left the store.
	StatusShipped OrderStatus = "ENVIADO"
	// StatusDelivered is the terminal status.
	StatusDelivered OrderStatus = "ENTREGADO"
)

// Statuses lists every status in lifecycle order.
var Statuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusInPreparation,
	StatusShipped,
	StatusDelivered,
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (OrderStatus, error) {
	candidate := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range Statuses {
		if st == candidate {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// IsTerminal reports whether no further status change is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "EFECTIVO"
	PaymentCard     PaymentMethod = "TARJETA"
	PaymentTransfer PaymentMethod = "TRANSFERENCIA"
)

// Valid reports whether p is a known payment method.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// DeliveryMethod is how the order reaches the customer.
type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "DOMICILIO"
	DeliveryPickup DeliveryMethod = "RECOGIDA_TIENDA"
)

// OrderItem is one product line of an order, with the unit price at purchase time.
type OrderItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return money.Line(i.Price, i.Quantity)
}

// Customer is the account that placed the order.
type Customer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// Order represents a placed order as stored by the backend.
type Order struct {
	ID              int             `json:"id"`
	UserID          int             `json:"userId"`
	Items           []OrderItem     `json:"items"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	DeliveryMethod  DeliveryMethod  `json:"deliveryMethod"`
	ShippingAddress string          `json:"shippingAddress"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	User            *Customer       `json:"user,omitempty"`
}

// NewOrder is the payload of an order submission.
type NewOrder struct {
	UserID          int             `json:"userId"`
	Items           []OrderItem     `json:"items"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	DeliveryMethod  DeliveryMethod  `json:"deliveryMethod"`
	ShippingAddress string          `json:"shippingAddress"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Total           decimal.Decimal `json:"total"`
}

// Filter narrows the admin order list.
type Filter struct {
	// Status keeps only orders in this status when set.
	Status OrderStatus
	// Search matches the order id or the customer's name, surname or email, ignoring case.
	Search string
}

// Matches reports whether o satisfies every predicate of f.
func (f Filter) Matches(o Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}

	if strings.Contains(strconv.Itoa(o.ID), term) {
		return true
	}
	if o.User == nil {
		return false
	}
	for _, field := range []string{o.User.Name, o.User.Surname, o.User.Email} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Apply returns the orders matching f, preserving order.
func (f Filter) Apply(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}
