package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	orders "bakery-storefront/internal/features/orders/domain"
	session "bakery-storefront/internal/features/session/domain"
)

// FulfillmentKind tells home delivery apart from store pickup.
type FulfillmentKind string

const (
	KindDelivery FulfillmentKind = "delivery"
	KindPickup   FulfillmentKind = "pickup"
)

// LegacyPickupAddress is the address older clients send to mean store pickup.
const LegacyPickupAddress = "store pickup"

// Fulfillment is how the order reaches the customer. Address and City are only
// meaningful for delivery.
type Fulfillment struct {
	Kind    FulfillmentKind `json:"kind"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Email   string          `json:"email"`
	Address string          `json:"address,omitempty"`
	City    string          `json:"city,omitempty"`
}

// UnmarshalJSON infers the kind when it is missing: the legacy pickup address
// selects pickup, anything else delivery.
func (f *Fulfillment) UnmarshalJSON(b []byte) error {
	type plain Fulfillment
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	if p.Kind == "" {
		if strings.EqualFold(strings.TrimSpace(p.Address), LegacyPickupAddress) {
			p.Kind = KindPickup
		} else {
			p.Kind = KindDelivery
		}
	}
	if p.Kind == KindPickup {
		p.Address = ""
		p.City = ""
	}

	*f = Fulfillment(p)
	return nil
}

// Validate checks that the fulfillment can be shipped. Pickup is always valid.
func (f Fulfillment) Validate() error {
	switch f.Kind {
	case KindPickup:
		return nil
	case KindDelivery:
		if strings.TrimSpace(f.Address) == "" {
			return fmt.Errorf("%w: address is required for delivery", ErrInvalidFulfillment)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidFulfillment, f.Kind)
	}
}

// DeliveryMethod maps the kind to the backend's delivery method.
func (f Fulfillment) DeliveryMethod() orders.DeliveryMethod {
	if f.Kind == KindPickup {
		return orders.DeliveryPickup
	}
	return orders.DeliveryHome
}

// PrefillFrom fills empty contact fields from the logged-in user.
func (f *Fulfillment) PrefillFrom(u *session.User) {
	if u == nil {
		return
	}
	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = v
		}
	}
	fill(&f.Name, strings.TrimSpace(u.Name+" "+u.Surname))
	fill(&f.Phone, u.Phone)
	fill(&f.Email, u.Email)
	if f.Kind == KindDelivery {
		fill(&f.Address, u.Address)
		fill(&f.City, u.District)
	}
}

// ShippingLine renders the single shipping string the backend stores.
func (f Fulfillment) ShippingLine(pickupAddress string) string {
	if f.Kind == KindPickup {
		return pickupAddress
	}
	return fmt.Sprintf("%s, %s - Tel: %s - %s", f.Address, f.City, f.Phone, f.Name)
}
