package handler

import (
	"bakery-storefront/internal/core/server"
	"bakery-storefront/internal/features/catalog/domain"
	"bakery-storefront/internal/features/catalog/ports"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	service ports.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListProducts handles GET /products.
// @Summary List products
// @Description Lists one page of the catalog. Falls back to the bundled catalog when the backend is down.
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 12)"
// @Param name query string false "Name filter"
// @Param category query string false "Category label"
// @Success 200 {object} domain.Page
// @Failure 500 {object} server.ErrorResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	return h.list(c, c.Query("category"))
}

// ListByCategory handles GET /products/category/:name.
// @Summary List products of a category
// @Tags Catalog
// @Produce json
// @Param name path string true "Category label"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 12)"
// @Success 200 {object} domain.Page
// @Failure 500 {object} server.ErrorResponse
// @Router /products/category/{name} [get]
func (h *CatalogHandler) ListByCategory(c *fiber.Ctx) error {
	return h.list(c, c.Params("name"))
}

func (h *CatalogHandler) list(c *fiber.Ctx, category string) error {
	q := domain.Query{
		Page:     c.QueryInt("page", domain.DefaultPage),
		Limit:    c.QueryInt("limit", domain.DefaultLimit),
		Name:     c.Query("name"),
		Category: category,
	}

	page, err := h.service.ListProducts(c.UserContext(), q)
	if err != nil {
		return server.RespondError(c, fiber.StatusInternalServerError, "Failed to list products", err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}
