package service

import (
	"context"
	"errors"
	"testing"

	"bakery-storefront/internal/features/catalog/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductGateway is a mock implementation of ports.ProductGateway
type MockProductGateway struct {
	mock.Mock
}

func (m *MockProductGateway) ListProducts(ctx context.Context, q domain.Query) (*domain.Page, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

// MockProductIndex is a mock implementation of ports.ProductIndex
type MockProductIndex struct {
	mock.Mock
}

func (m *MockProductIndex) Remember(ctx context.Context, products []domain.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductIndex) Lookup(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func fallback() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Tarta de tres leches", Category: "Pasteles", Price: decimal.NewFromInt(75)},
		{ID: 2, Name: "Pan de masa madre", Category: "Panes", Price: decimal.NewFromInt(45)},
	}
}

func TestCatalogService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gw := new(MockProductGateway)
		idx := new(MockProductIndex)
		svc := NewCatalogService(gw, idx, fallback())

		page := &domain.Page{Products: []domain.Product{{ID: 10, Name: "Remote"}}, Page: 1, Limit: 12, Total: 1}
		gw.On("ListProducts", ctx, domain.Query{Page: 1, Limit: 12, Name: "re"}).Return(page, nil).Once()
		idx.On("Remember", ctx, page.Products).Return(nil).Once()

		got, err := svc.ListProducts(ctx, domain.Query{Name: " re "})
		require.NoError(t, err)
		assert.Equal(t, page, got)
		assert.False(t, got.Degraded)
		gw.AssertExpectations(t)
		idx.AssertExpectations(t)
	})

	t.Run("IndexFailureIsNotFatal", func(t *testing.T) {
		gw := new(MockProductGateway)
		idx := new(MockProductIndex)
		svc := NewCatalogService(gw, idx, fallback())

		page := &domain.Page{Products: []domain.Product{{ID: 10}}}
		gw.On("ListProducts", ctx, mock.Anything).Return(page, nil).Once()
		idx.On("Remember", ctx, mock.Anything).Return(errors.New("redis down")).Once()

		got, err := svc.ListProducts(ctx, domain.Query{})
		require.NoError(t, err)
		assert.Equal(t, page, got)
	})

	t.Run("FallbackOnGatewayError", func(t *testing.T) {
		gw := new(MockProductGateway)
		idx := new(MockProductIndex)
		svc := NewCatalogService(gw, idx, fallback())

		gw.On("ListProducts", ctx, mock.Anything).Return(nil, errors.New("could not reach server")).Once()

		got, err := svc.ListProducts(ctx, domain.Query{Category: "panes"})
		require.NoError(t, err)
		assert.True(t, got.Degraded)
		require.Len(t, got.Products, 1)
		assert.Equal(t, 2, got.Products[0].ID)
		idx.AssertNotCalled(t, "Remember", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_FindProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("FromIndex", func(t *testing.T) {
		idx := new(MockProductIndex)
		svc := NewCatalogService(new(MockProductGateway), idx, fallback())

		idx.On("Lookup", ctx, 10).Return(&domain.Product{ID: 10, Name: "Remote"}, nil).Once()

		p, err := svc.FindProduct(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "Remote", p.Name)
	})

	t.Run("FromFallback", func(t *testing.T) {
		idx := new(MockProductIndex)
		svc := NewCatalogService(new(MockProductGateway), idx, fallback())

		idx.On("Lookup", ctx, 2).Return(nil, domain.ErrProductNotFound).Once()

		p, err := svc.FindProduct(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Pan de masa madre", p.Name)
	})

	t.Run("Unknown", func(t *testing.T) {
		idx := new(MockProductIndex)
		svc := NewCatalogService(new(MockProductGateway), idx, fallback())

		idx.On("Lookup", ctx, 99).Return(nil, errors.New("redis down")).Once()

		p, err := svc.FindProduct(ctx, 99)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
