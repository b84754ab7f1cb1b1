package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bakery-storefront/internal/features/cart/domain"
	catalog "bakery-storefront/internal/features/catalog/domain"
	sessiondomain "bakery-storefront/internal/features/session/domain"
	session "bakery-storefront/internal/features/session/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sid = "0b6f6c6e-58a4-4b3c-9f0e-3f2a4d3c1a11"

// MockCartService is a mock implementation of ports.CartService
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartService) Increment(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartService) Decrement(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// fixedSession places sess on the context the way the session middleware does.
func fixedSession(sess *sessiondomain.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("session", sess)
		return c.Next()
	}
}

func setupApp(svc *MockCartService, sess *sessiondomain.Session) *fiber.App {
	app := fiber.New()
	h := NewCartHandler(svc)

	g := app.Group("/cart", fixedSession(sess), session.RefuseAdmin())
	g.Get("/", h.GetCart)
	g.Delete("/", h.ClearCart)
	g.Post("/items", h.AddItem)
	g.Post("/items/:id/increment", h.Increment)
	g.Post("/items/:id/decrement", h.Decrement)
	g.Delete("/items/:id", h.RemoveItem)
	return app
}

func cartWith(items ...domain.Item) *domain.Cart {
	c := domain.New(sid)
	c.Items = items
	return c
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCartService)
		app := setupApp(svc, sessiondomain.New(sid))

		cake := catalog.Product{ID: 1, Name: "Tarta de tres leches", Price: decimal.NewFromInt(75)}
		svc.On("Add", mock.Anything, sid, 1).Return(cartWith(domain.Item{Product: cake, Quantity: 1}), nil).Once()

		req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(`{"productId":1}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var view struct {
			Items    []map[string]any `json:"items"`
			Count    int              `json:"count"`
			Subtotal float64          `json:"subtotal"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		assert.Equal(t, 1, view.Count)
		assert.Equal(t, 75.0, view.Subtotal)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Tarta de tres leches", view.Items[0]["name"])
		assert.Equal(t, 1.0, view.Items[0]["quantity"])
	})

	t.Run("MissingProductID", func(t *testing.T) {
		svc := new(MockCartService)
		app := setupApp(svc, sessiondomain.New(sid))

		req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		svc := new(MockCartService)
		app := setupApp(svc, sessiondomain.New(sid))

		svc.On("Add", mock.Anything, sid, 99).Return(nil, catalog.ErrProductNotFound).Once()

		req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(`{"productId":99}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestCartHandler_LineOperations(t *testing.T) {
	cases := []struct {
		method string
		path   string
		call   string
	}{
		{http.MethodPost, "/cart/items/2/increment", "Increment"},
		{http.MethodPost, "/cart/items/2/decrement", "Decrement"},
		{http.MethodDelete, "/cart/items/2", "Remove"},
	}

	for _, tc := range cases {
		t.Run(tc.call, func(t *testing.T) {
			svc := new(MockCartService)
			app := setupApp(svc, sessiondomain.New(sid))
			svc.On(tc.call, mock.Anything, sid, 2).Return(cartWith(), nil).Once()

			resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}

	t.Run("NotInCart", func(t *testing.T) {
		svc := new(MockCartService)
		app := setupApp(svc, sessiondomain.New(sid))
		svc.On("Increment", mock.Anything, sid, 5).Return(nil, domain.ErrItemNotInCart).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/cart/items/5/increment", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("InvalidID", func(t *testing.T) {
		svc := new(MockCartService)
		app := setupApp(svc, sessiondomain.New(sid))

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/cart/items/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestCartHandler_Clear(t *testing.T) {
	svc := new(MockCartService)
	app := setupApp(svc, sessiondomain.New(sid))
	svc.On("Clear", mock.Anything, sid).Return(nil).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/cart", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestCartHandler_AdminRefused(t *testing.T) {
	svc := new(MockCartService)
	admin := sessiondomain.New(sid)
	admin.Login("t", sessiondomain.User{ID: 1, Role: sessiondomain.RoleAdmin})
	app := setupApp(svc, admin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
