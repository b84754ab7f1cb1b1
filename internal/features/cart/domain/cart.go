package domain

import (
	"errors"

	"bakery-storefront/internal/core/money"
	catalog "bakery-storefront/internal/features/catalog/domain"

	"github.com/shopspring/decimal"
)

// ErrItemNotInCart is returned when an operation names a product the cart does not hold.
var ErrItemNotInCart = errors.New("item not in cart")

// Item is a product line of the cart. Quantity is always at least 1.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return money.Line(i.Price, i.Quantity)
}

// Cart holds the products a visitor selected, one line per product id,
// in the order they were first added.
type Cart struct {
	SessionID string `json:"-"`
	Items     []Item `json:"items"`
}

// New returns an empty cart.
func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Items: []Item{}}
}

func (c *Cart) index(productID int) int {
	for i := range c.Items {
		if c.Items[i].ID == productID {
			return i
		}
	}
	return -1
}

// Add puts p in the cart with quantity 1, or bumps the existing line.
func (c *Cart) Add(p catalog.Product) {
	if i := c.index(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, Item{Product: p, Quantity: 1})
}

// Increment raises the quantity of a line by one.
func (c *Cart) Increment(productID int) error {
	i := c.index(productID)
	if i < 0 {
		return ErrItemNotInCart
	}
	c.Items[i].Quantity++
	return nil
}

// Decrement lowers the quantity of a line by one, never below 1.
func (c *Cart) Decrement(productID int) error {
	i := c.index(productID)
	if i < 0 {
		return ErrItemNotInCart
	}
	if c.Items[i].Quantity > 1 {
		c.Items[i].Quantity--
	}
	return nil
}

// Remove drops a line.
func (c *Cart) Remove(productID int) error {
	i := c.index(productID)
	if i < 0 {
		return ErrItemNotInCart
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal is the sum of every line total.
func (c *Cart) Subtotal() decimal.Decimal {
	total := money.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Count is the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// View is the JSON shape returned to visitors.
type View struct {
	Items    []Item          `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// View projects the cart with its derived totals.
func (c *Cart) View() View {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return View{Items: items, Count: c.Count(), Subtotal: c.Subtotal()}
}
