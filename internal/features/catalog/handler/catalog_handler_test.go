package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"bakery-storefront/internal/features/catalog/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService is a mock implementation of ports.CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context, q domain.Query) (*domain.Page, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *MockCatalogService) FindProduct(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func setupApp(service *MockCatalogService) *fiber.App {
	app := fiber.New()
	h := NewCatalogHandler(service)
	app.Get("/products", h.ListProducts)
	app.Get("/products/category/:name", h.ListByCategory)
	return app
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCatalogService)
		app := setupApp(svc)

		page := &domain.Page{Products: []domain.Product{{ID: 1, Name: "Tarta"}}, Page: 2, Limit: 6, Total: 7, TotalPages: 2}
		svc.On("ListProducts", mock.Anything, domain.Query{Page: 2, Limit: 6, Name: "tar"}).Return(page, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/products?page=2&limit=6&name=tar", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got domain.Page
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 7, got.Total)
		require.Len(t, got.Products, 1)
		svc.AssertExpectations(t)
	})

	t.Run("CategoryQuery", func(t *testing.T) {
		svc := new(MockCatalogService)
		app := setupApp(svc)

		svc.On("ListProducts", mock.Anything, domain.Query{Page: 1, Limit: 12, Category: "Panes"}).
			Return(&domain.Page{Degraded: true}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/products?category=Panes", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("InternalError", func(t *testing.T) {
		svc := new(MockCatalogService)
		app := setupApp(svc)

		svc.On("ListProducts", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/products", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestCatalogHandler_ListByCategory(t *testing.T) {
	svc := new(MockCatalogService)
	app := setupApp(svc)

	svc.On("ListProducts", mock.Anything, domain.Query{Page: 1, Limit: 12, Category: "Pasteles"}).
		Return(&domain.Page{}, nil).Once()

	resp, err := app.Test(httptest.NewRequest("GET", "/products/category/Pasteles", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}
