package adapters

import (
	"context"
	"errors"

	"bakery-storefront/internal/core/apiclient"
	"bakery-storefront/internal/features/session/domain"
)

// BakeryAPIAdapter implements ports.AuthGateway over the bakery REST API.
type BakeryAPIAdapter struct {
	client *apiclient.Client
}

// NewBakeryAPIAdapter creates a new BakeryAPIAdapter.
func NewBakeryAPIAdapter(client *apiclient.Client) *BakeryAPIAdapter {
	return &BakeryAPIAdapter{client: client}
}

// Login calls POST /users/login. A 401 becomes domain.ErrInvalidCredentials.
func (a *BakeryAPIAdapter) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	var result domain.AuthResult
	if err := a.client.Post(ctx, "/users/login", creds, &result); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &result, nil
}

// Register calls POST /users/register. The backend may answer without a token.
func (a *BakeryAPIAdapter) Register(ctx context.Context, form domain.Registration) (*domain.AuthResult, error) {
	var result domain.AuthResult
	if err := a.client.Post(ctx, "/users/register", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
