package domain

import (
	"bakery-storefront/internal/core/money"
	cart "bakery-storefront/internal/features/cart/domain"
	orders "bakery-storefront/internal/features/orders/domain"

	"github.com/shopspring/decimal"
)

// Pricing holds the fulfillment settings of the store.
type Pricing struct {
	// ShippingCost is charged for home delivery.
	ShippingCost decimal.Decimal
	// PickupAddress is sent as the shipping string of pickup orders.
	PickupAddress string
}

// Totals are the amounts of an order.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Total        decimal.Decimal `json:"total"`
}

// ComputeTotals applies the shipping rule: pickup ships free, delivery pays the flat fee.
func ComputeTotals(subtotal decimal.Decimal, kind FulfillmentKind, p Pricing) Totals {
	shipping := p.ShippingCost
	if kind == KindPickup {
		shipping = money.Zero
	}
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal.Add(shipping),
	}
}

// BuildOrder turns the cart and the confirmed choices into an order submission.
func BuildOrder(c *cart.Cart, userID int, f Fulfillment, pm orders.PaymentMethod, p Pricing) orders.NewOrder {
	items := make([]orders.OrderItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, orders.OrderItem{
			ProductID: it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	totals := ComputeTotals(c.Subtotal(), f.Kind, p)
	return orders.NewOrder{
		UserID:          userID,
		Items:           items,
		PaymentMethod:   pm,
		DeliveryMethod:  f.DeliveryMethod(),
		ShippingAddress: f.ShippingLine(p.PickupAddress),
		Subtotal:        totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		Total:           totals.Total,
	}
}

// View is the checkout state returned to visitors.
type View struct {
	Step           Step                 `json:"step"`
	ResumeCheckout bool                 `json:"resumeCheckout"`
	Cart           cart.View            `json:"cart"`
	Fulfillment    *Fulfillment         `json:"fulfillment,omitempty"`
	PaymentMethod  orders.PaymentMethod `json:"paymentMethod,omitempty"`
	Totals         *Totals              `json:"totals,omitempty"`
	OrderID        int                  `json:"orderId,omitempty"`
	Error          string               `json:"error,omitempty"`
}

// NewView projects the flow together with the cart it is checking out.
func NewView(f *Flow, c *cart.Cart, p Pricing) View {
	v := View{
		Step:           f.Step,
		ResumeCheckout: f.ResumeCheckout,
		Cart:           c.View(),
		Fulfillment:    f.Fulfillment,
		PaymentMethod:  f.PaymentMethod,
		OrderID:        f.OrderID,
		Error:          f.LastError,
	}
	switch {
	case f.Placed != nil:
		v.Totals = f.Placed
	case f.Fulfillment != nil:
		t := ComputeTotals(c.Subtotal(), f.Fulfillment.Kind, p)
		v.Totals = &t
	}
	return v
}
