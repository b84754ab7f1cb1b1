package adapters

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"bakery-storefront/internal/features/catalog/domain"
)

//go:embed fallback_products.json
var fallbackProducts []byte

// StaticCatalog returns the bundled product list served while the backend is unreachable.
func StaticCatalog() ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(fallbackProducts, &products); err != nil {
		return nil, fmt.Errorf("failed to decode bundled catalog: %w", err)
	}
	return products, nil
}
