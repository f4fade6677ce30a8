package handlers

import (
	"net/http"
	"time"

	"catalogapi/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CatalogHandlers serves the public read-only catalog.
type CatalogHandlers struct {
	products   services.ProductService
	categories services.CategoryService
	baseURL    string
	timeout    time.Duration
	log        *zap.SugaredLogger
}

func NewCatalogHandlers(products services.ProductService, categories services.CategoryService, baseURL string, timeout time.Duration, log *zap.SugaredLogger) *CatalogHandlers {
	return &CatalogHandlers{
		products:   products,
		categories: categories,
		baseURL:    baseURL,
		timeout:    timeout,
		log:        log,
	}
}

// ListCategories handles GET /categories
func (h *CatalogHandlers) ListCategories(c echo.Context) error {
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	records, err := h.categories.ListCategories(ctx, baseURL(c, h.baseURL))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, records)
}

// GetCategory handles GET /categories/:name
func (h *CatalogHandlers) GetCategory(c echo.Context) error {
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	record, err := h.categories.GetCategoryByName(ctx, c.Param("name"), baseURL(c, h.baseURL))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, record)
}

// ListProducts handles GET /products?category_name=&variant=
func (h *CatalogHandlers) ListProducts(c echo.Context) error {
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	summaries, err := h.products.ListProducts(ctx, services.ProductQuery{
		CategoryName: c.QueryParam("category_name"),
		Variant:      c.QueryParam("variant"),
		BaseURL:      baseURL(c, h.baseURL),
	})
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetProduct handles GET /products/:title
func (h *CatalogHandlers) GetProduct(c echo.Context) error {
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	record, err := h.products.GetProductByTitle(ctx, c.Param("title"), baseURL(c, h.baseURL))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, record)
}

// ListBestSellers handles GET /bestsellers
func (h *CatalogHandlers) ListBestSellers(c echo.Context) error {
	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	best, err := h.products.ListBestSellers(ctx, baseURL(c, h.baseURL))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, best)
}
