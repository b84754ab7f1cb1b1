package domain

import (
	"testing"

	catalog "bakery-storefront/internal/features/catalog/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cake  = catalog.Product{ID: 1, Name: "Tarta de tres leches", Price: decimal.NewFromInt(75)}
	bread = catalog.Product{ID: 2, Name: "Pan de masa madre", Price: decimal.NewFromInt(45)}
)

func TestCart_AddSameProductTwice(t *testing.T) {
	c := New("sid")
	c.Add(cake)
	c.Add(cake)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestCart_SameNameDifferentProducts(t *testing.T) {
	c := New("sid")
	c.Add(catalog.Product{ID: 10, Name: "Croissant", Price: decimal.NewFromInt(3)})
	c.Add(catalog.Product{ID: 11, Name: "Croissant", Price: decimal.NewFromInt(4)})

	assert.Len(t, c.Items, 2)
}

func TestCart_Subtotal(t *testing.T) {
	c := New("sid")
	c.Add(cake)
	c.Add(bread)
	require.NoError(t, c.Increment(bread.ID))

	assert.Equal(t, "165", c.Subtotal().String())
	assert.Equal(t, 3, c.Count())
}

func TestCart_DecrementFloorsAtOne(t *testing.T) {
	c := New("sid")
	c.Add(cake)

	require.NoError(t, c.Decrement(cake.ID))
	require.NoError(t, c.Decrement(cake.ID))
	assert.Equal(t, 1, c.Items[0].Quantity)

	assert.ErrorIs(t, c.Decrement(99), ErrItemNotInCart)
	assert.ErrorIs(t, c.Increment(99), ErrItemNotInCart)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := New("sid")
	c.Add(cake)
	c.Add(bread)

	require.NoError(t, c.Remove(cake.ID))
	require.Len(t, c.Items, 1)
	assert.Equal(t, bread.ID, c.Items[0].ID)
	assert.ErrorIs(t, c.Remove(cake.ID), ErrItemNotInCart)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal().IsZero())
}

func TestCart_View(t *testing.T) {
	c := &Cart{}
	v := c.View()
	assert.NotNil(t, v.Items)
	assert.Equal(t, 0, v.Count)

	c.Add(cake)
	v = c.View()
	assert.Equal(t, 1, v.Count)
	assert.Equal(t, "75", v.Subtotal.String())
}
