package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bakery-storefront/internal/core/apiclient"
	"bakery-storefront/internal/core/httpclient"
	"bakery-storefront/internal/core/proxy"
	"bakery-storefront/internal/features/session/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T, handler http.HandlerFunc) *BakeryAPIAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := apiclient.New(server.URL, httpclient.NewClient(time.Second, proxy.Settings{}))
	return NewBakeryAPIAdapter(client)
}

func TestBakeryAPIAdapter_Login(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/login", r.URL.Path)

		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@example.com", creds.Email)

		w.Write([]byte(`{"token":"jwt","user":{"id":7,"name":"Ana","surname":"López","email":"ana@example.com","role":"CUSTOMER"}}`))
	})

	result, err := adapter.Login(context.Background(), domain.Credentials{Email: "ana@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", result.Token)
	assert.Equal(t, 7, result.User.ID)
	assert.Equal(t, domain.RoleCustomer, result.User.Role)
}

func TestBakeryAPIAdapter_Login_Rejected(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad password"}`))
	})

	_, err := adapter.Login(context.Background(), domain.Credentials{Email: "ana@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestBakeryAPIAdapter_Register(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"user":{"id":8,"email":"new@example.com","role":"CUSTOMER"}}`))
	})

	result, err := adapter.Register(context.Background(), domain.Registration{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Empty(t, result.Token)
	assert.Equal(t, 8, result.User.ID)
}

func TestBakeryAPIAdapter_Register_Conflict(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := adapter.Register(context.Background(), domain.Registration{Email: "dup@example.com"})
	var apiErr *apiclient.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid request", apiErr.Message)
}
