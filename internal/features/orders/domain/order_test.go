package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" pendiente ")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)

	_, err = ParseStatus("CANCELADO")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.True(t, StatusDelivered.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentTransfer.Valid())
	assert.False(t, PaymentMethod("BITCOIN").Valid())
}

func TestFilter_StatusAndEmail(t *testing.T) {
	orders := []Order{
		{ID: 1, Status: StatusPending, User: &Customer{Name: "Ana", Email: "ana@example.com"}},
		{ID: 2, Status: StatusPending, User: &Customer{Name: "Luis", Email: "luis@example.com"}},
		{ID: 3, Status: StatusShipped, User: &Customer{Name: "Ana", Email: "ana@example.com"}},
		{ID: 4, Status: StatusPending},
	}

	got := Filter{Status: StatusPending, Search: "ANA@Example"}.Apply(orders)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFilter_Search(t *testing.T) {
	o := Order{ID: 1234, User: &Customer{Name: "Ana", Surname: "López", Email: "ana@example.com"}}

	assert.True(t, Filter{}.Matches(o))
	assert.True(t, Filter{Search: "23"}.Matches(o))
	assert.True(t, Filter{Search: "lópez"}.Matches(o))
	assert.False(t, Filter{Search: "pedro"}.Matches(o))
	assert.False(t, Filter{Search: "ana"}.Matches(Order{ID: 9}))
}

func TestOrder_MarshalJSON(t *testing.T) {
	order := Order{
		ID:           7,
		Status:       StatusPending,
		Items:        []OrderItem{{ProductID: 1, Name: "Tarta", Price: decimal.NewFromInt(75), Quantity: 2}},
		Subtotal:     decimal.NewFromInt(150),
		ShippingCost: decimal.NewFromInt(15),
		Total:        decimal.NewFromInt(165),
	}

	data, err := json.Marshal(order)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"status":"PENDIENTE"`)
	assert.Contains(t, s, `"total":165`)
	assert.Contains(t, s, `"items":[{"productId":1`)
	assert.Equal(t, "150", order.Items[0].LineTotal().String())
}
